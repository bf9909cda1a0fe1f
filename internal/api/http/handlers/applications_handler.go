package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bruinrecruit/recruitment-service/internal/api/dto"
	"github.com/bruinrecruit/recruitment-service/internal/auth"
	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/service"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// ApplicationsHandler exposes the application lifecycle.
type ApplicationsHandler struct {
	apps *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(apps *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{apps: apps}
}

// Get handles GET /applications/:id?. Without an id it lists; ?season filters
// admin listings and ?extended selects the full projection.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	if id := c.Params("id"); id != "" {
		app, err := h.apps.Get(c.UserContext(), actor, id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
	}

	apps, err := h.apps.List(c.UserContext(), actor, service.ApplicationFilter{SeasonID: c.Query("season")})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": dto.ApplicationList(apps, actor.IsAdmin(), c.QueryBool("extended"))})
}

// Create handles POST /applications.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	app, err := h.apps.Create(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
}

// Update handles PUT /applications/:id?, the candidate profile edit. Admins
// get 405 whatever the request carries.
func (h *ApplicationsHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return errorutil.NewMethodNotAllowed("Administrators cannot edit application profiles")
	}
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "Must specify an application id")
	}
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Profile == nil {
		return fiber.NewError(http.StatusBadRequest, "Must specify profile")
	}

	app, err := h.apps.UpdateProfile(c.UserContext(), actor, id, req.Profile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
}

// UpdateAvailability handles PUT /applications/:id/availability.
func (h *ApplicationsHandler) UpdateAvailability(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return errorutil.NewMethodNotAllowed("Administrators cannot submit availability")
	}
	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.apps.UpdateAvailability(c.UserContext(), actor, c.Params("id"), req.Availability)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
}

// Submit handles POST /applications/:id/submit.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	app, err := h.apps.Submit(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
}

// Review handles POST /applications/:id/review.
func (h *ApplicationsHandler) Review(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Application == nil {
		return fiber.NewError(http.StatusBadRequest, "Must specify application")
	}

	app, err := h.apps.Review(c.UserContext(), actor, c.Params("id"), req.Application.ToWorkflow())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": dto.PublicApplication(app, actor.IsAdmin())})
}

// Delete handles DELETE /applications/:id?.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	n, err := h.apps.Delete(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"numDeleted": n})
}

func currentActor(c *fiber.Ctx) (domain.Actor, error) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return domain.Actor{}, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return actor, nil
}
