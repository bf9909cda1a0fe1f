package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/config"
	"github.com/bruinrecruit/recruitment-service/internal/observability"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// MiddlewareConfig carries settings for the global middleware chain.
type MiddlewareConfig struct {
	Timeout          time.Duration
	CORSAllowOrigins string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(observability.RequestLogger(logger, metrics))
}

// NewAuthLimiter throttles credential endpoints per client IP. A nil storage
// keeps counters in process memory.
func NewAuthLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.AuthMax,
		Expiration: cfg.AuthWindow(),
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return errorutil.NewTooManyRequests("Too many authentication attempts, try again later")
		},
	})
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error as JSON. Request metrics for
// returned errors are recorded by the request logger; panics never reach it,
// so they are counted here.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				metrics.RecordError(c.Path(), c.Method(), "INTERNAL_ERROR")
				err = errorutil.NewInternalError(nil)
			}
			if err != nil {
				err = writeError(c, logger, err)
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	domainErr := errorutil.ToDomainError(err)
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed", zap.Error(domainErr))
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
		"error":   body,
		"message": domainErr.Message,
	})
}
