package middleware

import (
	"time"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	"github.com/Aniket1026/yoto/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// NewMetricsMiddleware records status and latency per matched route pattern.
func NewMetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status = basehdl.ErrorEnvelope(err).StatusCode
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
