package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bruinrecruit/recruitment-service/internal/api/dto"
	"github.com/bruinrecruit/recruitment-service/internal/service"
)

// UsersHandler exposes account registration and login.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.User == nil {
		return fiber.NewError(http.StatusBadRequest, "Must specify user")
	}
	if req.User.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Must specify password")
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:        req.User.Email,
		Password:     req.User.Password,
		ConfPassword: req.User.ConfPassword,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": dto.PublicUser(user)})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "Must specify email")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Must specify password")
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": exp,
		"user":      dto.PublicUser(user),
	})
}
