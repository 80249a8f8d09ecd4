package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/observability"
	apperrors "github.com/mcp-cau/glpi-gateway/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as tracing, error
// handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(traceMiddleware())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	// The request logger must wrap error handling so it observes the status
	// the error middleware actually wrote, not the pre-render default.
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

// traceMiddleware assigns each request a short random token echoed in every
// response for log correlation. It is never stored anywhere.
func traceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(observability.TraceIDKey, uuid.NewString()[:8])
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(errorEnvelope(c, domainErr))
				err = nil
			}
		}()
		return c.Next()
	}
}

// errorEnvelope renders the bilingual failure shape the Copilot Studio
// dialogs branch on. Auth-flow failures expose a stable snake_case code with
// a separate human message; everything else carries the user-facing message
// in the erro/error pair itself.
func errorEnvelope(c *fiber.Ctx, domainErr *apperrors.DomainError) fiber.Map {
	traceID, _ := c.Locals(observability.TraceIDKey).(string)
	resp := fiber.Map{
		"sucesso":  false,
		"success":  false,
		"trace_id": traceID,
	}
	if code, ok := wireCodes[domainErr.Code]; ok {
		resp["erro"] = code
		resp["error"] = code
		resp["mensagem"] = domainErr.Message
		resp["message"] = domainErr.Message
	} else {
		resp["erro"] = domainErr.Message
		resp["error"] = domainErr.Message
	}
	if len(domainErr.Details) > 0 {
		resp["detalhe"] = domainErr.Details
		resp["details"] = domainErr.Details
	}
	return resp
}

var wireCodes = map[string]string{
	"UNAUTHORIZED":   "unauthorized",
	"MFA_REQUIRED":   "mfa_required",
	"NOT_FOUND":      "not_found",
	"UNPROCESSABLE":  "unprocessable_entity",
	"INTERNAL_ERROR": "internal_error",
}
