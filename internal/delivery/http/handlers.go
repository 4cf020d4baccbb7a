package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/maternalrisk/backend/internal/domain"
)

// Assessor is the scoring engine as seen by the transport layer
type Assessor interface {
	Assess(ctx context.Context, req domain.AssessmentRequest) (domain.CompositeResult, error)
	Regions(ctx context.Context) ([]string, error)
}

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// Handler contains all HTTP handlers
type Handler struct {
	riskSvc Assessor
	checks  map[string]HealthCheck
	version string
	log     *logrus.Logger
}

// NewHandler creates a new handler
func NewHandler(riskSvc Assessor, checks map[string]HealthCheck, version string, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		riskSvc: riskSvc,
		checks:  checks,
		version: version,
		log:     log,
	}
}

// HealthCheck returns service health status. Dependency failures are reported but do not
// change the status code, since a missing dependency only fails the requests that need it.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = "degraded"
			deps[name] = err.Error()
			continue
		}
		deps[name] = "ok"
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"service":      "maternal-risk",
		"version":      h.version,
		"dependencies": deps,
	})
}

// GetStates returns every region known to the indicator dataset
func (h *Handler) GetStates(c *fiber.Ctx) error {
	regions, err := h.riskSvc.Regions(c.UserContext())
	if err != nil {
		return err
	}
	if regions == nil {
		regions = []string{}
	}

	return c.JSON(fiber.Map{
		"states": regions,
	})
}

// Predict validates the request and returns the composite risk assessment
func (h *Handler) Predict(c *fiber.Ctx) error {
	var req PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	assessment, err := req.Validate()
	if err != nil {
		return err
	}

	result, err := h.riskSvc.Assess(c.UserContext(), assessment)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ErrorHandler maps domain errors onto HTTP status codes
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var detail any

		var fe *fiber.Error
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &ve):
			code = fiber.StatusUnprocessableEntity
			message = "Validation failed"
			detail = ve.Fields
		case errors.Is(err, domain.ErrRegionNotFound):
			code = fiber.StatusNotFound
			message = "Region not found in NFHS dataset"
			detail = err.Error()
		case errors.Is(err, domain.ErrInferenceFailure):
			message = "Model inference failed"
			detail = err.Error()
		case errors.Is(err, domain.ErrDataUnavailable):
			message = "NFHS dataset unavailable"
			detail = err.Error()
		}

		if code >= fiber.StatusInternalServerError && log != nil {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}

		body := fiber.Map{
			"error":   true,
			"message": message,
		}
		if detail != nil {
			body["detail"] = detail
		}
		return c.Status(code).JSON(body)
	}
}
