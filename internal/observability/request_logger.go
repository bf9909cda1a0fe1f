package observability

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// RequestLogger logs every request and records request metrics. Client errors
// log at warn and server errors at error.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.trackInFlight(1)
		defer metrics.trackInFlight(-1)

		chainErr := c.Next()

		status := c.Response().StatusCode()
		code := ""
		if chainErr != nil {
			domainErr := errorutil.ToDomainError(chainErr)
			status = domainErr.HTTPStatus
			code = domainErr.Code
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		elapsed := time.Since(start)
		metrics.RecordRequest(route, c.Method(), status, elapsed)
		if code != "" {
			metrics.RecordError(route, c.Method(), code)
		}

		fields := []zap.Field{
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("ip", c.IP()),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed", append(fields, zap.Error(chainErr))...)
		case status >= fiber.StatusBadRequest:
			if chainErr != nil && !errors.Is(chainErr, fiber.ErrNotFound) {
				fields = append(fields, zap.String("error", chainErr.Error()))
			}
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return chainErr
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
