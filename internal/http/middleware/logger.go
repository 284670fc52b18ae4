package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"scriptum/internal/logger"
)

// Logger writes one access log entry per request with request_id, method,
// path, status and latency in milliseconds. Server errors log at error level.
// The request-scoped logger is also stored on the user context so handlers can
// pick it up with logger.FromContext.
func Logger(log *zap.Logger) fiber.Handler {
	log = log.Named("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		reqLog := log.With(zap.String("request_id", rid))
		c.SetUserContext(logger.ContextWithLogger(c.UserContext(), reqLog))

		err := c.Next()

		status := statusOf(c, err)
		level := zapcore.InfoLevel
		if status >= fiber.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}

		reqLog.Log(level, "request",
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		)
		return err
	}
}
