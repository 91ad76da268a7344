package log

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Access logs one line per request once the handler chain has finished.
func Access() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// let the app error handler set the final status before logging
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		lvl := zapcore.InfoLevel
		if status >= fiber.StatusInternalServerError {
			lvl = zapcore.ErrorLevel
		}
		if ce := L().Check(lvl, "http.access"); ce != nil {
			fields := []zap.Field{
				zap.String("action", "http.access"),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
				zap.String("ip", c.IP()),
			}
			if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
				fields = append(fields, zap.String("req_id", rid))
			}
			ce.Write(fields...)
		}
		return nil
	}
}
