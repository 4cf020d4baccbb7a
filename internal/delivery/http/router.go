package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maternalrisk/backend/internal/metrics"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	app.Use(observe(m))

	// Health check
	app.Get("/health", handler.HealthCheck)
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Routes used by the web frontend
	app.Get("/states", handler.GetStates)
	app.Post("/predict", handler.Predict)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/regions", handler.GetStates)
		api.Post("/predict", handler.Predict)
	}
}

// observe records request counts and latency per matched route. Errors are rendered
// here so the recorded status matches the response.
func observe(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		m.ObserveHTTP(c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
