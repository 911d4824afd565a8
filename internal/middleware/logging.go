// Package middleware holds the Fiber middleware shared by every route.
package middleware

import (
	"log/slog"
	"time"

	"incubator/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ContextMiddleware carries the request id (as the correlation id) and the
// trace id from Fiber locals into the request context so the store and the
// editor can log them.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		id, _ := c.Locals("requestid").(string)
		if id == "" {
			id = observability.GenerateCorrelationID()
		}
		ctx = observability.WithCorrelationID(ctx, id)

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger logs one line per request through the global logger.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
			slog.String("correlation_id", observability.ExtractCorrelationID(c.UserContext())),
		}
		if tid, ok := c.Locals("traceID").(string); ok {
			fields = append(fields, slog.String("trace_id", tid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			observability.GlobalLogger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			observability.GlobalLogger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
