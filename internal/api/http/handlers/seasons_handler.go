package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bruinrecruit/recruitment-service/internal/api/dto"
	"github.com/bruinrecruit/recruitment-service/internal/service"
)

// SeasonsHandler exposes admin season management.
type SeasonsHandler struct {
	seasons *service.SeasonService
}

// NewSeasonsHandler constructs handler.
func NewSeasonsHandler(seasons *service.SeasonService) *SeasonsHandler {
	return &SeasonsHandler{seasons: seasons}
}

// Get handles GET /seasons/:id?.
func (h *SeasonsHandler) Get(c *fiber.Ctx) error {
	if id := c.Params("id"); id != "" {
		season, err := h.seasons.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"season": season})
	}
	seasons, err := h.seasons.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"seasons": seasons})
}

// Create handles POST /seasons.
func (h *SeasonsHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateSeasonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Season == nil {
		return fiber.NewError(http.StatusBadRequest, "Must specify season")
	}

	season, err := h.seasons.Create(c.UserContext(), actor, service.SeasonInput{
		Name:      req.Season.Name,
		StartDate: req.Season.StartDate,
		EndDate:   req.Season.EndDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"season": season})
}

// Delete handles DELETE /seasons/:id?.
func (h *SeasonsHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	n, err := h.seasons.Delete(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"numDeleted": n})
}
