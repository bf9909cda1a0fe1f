package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

const actorKey = "auth_actor"

// AuthMiddleware validates bearer tokens and loads the calling account.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. The role is read from
// the stored account, not the token, so demotions apply immediately.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return errorutil.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return errorutil.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorutil.NewUnauthorized("user not found")
		}
		return errorutil.MapError(err)
	}
	if user.IsBlocked() {
		return errorutil.NewForbidden("This account has been blocked")
	}

	c.Locals(actorKey, user.Actor())
	return c.Next()
}

// ActorFromContext retrieves the authenticated identity.
func ActorFromContext(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(actorKey).(domain.Actor)
	return actor, ok
}
