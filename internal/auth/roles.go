package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin ensures the caller holds the admin access type.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !actor.IsAdmin() {
			return fiber.NewError(http.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller identity was resolved.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ActorFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
