package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

// RequestLogger registra cada petición con zerolog y la cuenta en Prometheus.
// Debe montarse antes del interceptor para ver también los rechazos.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Se resuelve aquí para que el log lleve el código final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		if m != nil {
			m.HTTPRequests.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		}
		return nil
	}
}
