package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceIDKey is the fiber.Ctx locals key carrying the per-request trace id.
const TraceIDKey = "trace_id"

// RequestLogger logs one line per request with the trace id and feeds the
// request counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)
		status := c.Response().StatusCode()

		traceID, _ := c.Locals(TraceIDKey).(string)
		logger.Info("request",
			zap.String("trace_id", traceID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
		metrics.RecordRequest(c.Path(), c.Method(), status, duration)
		return err
	}
}
