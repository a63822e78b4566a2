package middleware

import (
	"strconv"
	"time"

	"github.com/emph/emph-api/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request and feeds the duration histogram.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		path := c.Route().Path

		logger.Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.IP()),
		)
		metrics.RecordHTTPRequestDuration(c.Method(), path, strconv.Itoa(status), latency)

		return err
	}
}
