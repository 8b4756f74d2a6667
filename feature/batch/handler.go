package batch

import (
	"errors"

	"imgdiff/core/locator"
	"imgdiff/core/logger"
	"imgdiff/core/report"
	"imgdiff/core/resource"
	"imgdiff/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request is the body of POST /batch.
type Request struct {
	A          string   `json:"a"`
	B          string   `json:"b"`
	Write      string   `json:"write"`
	Diff       string   `json:"diff"`
	JSONReport string   `json:"json_report"`
	Threshold  *float64 `json:"threshold"`
}

// Response is the body returned by POST /batch.
type Response struct {
	Clean   bool           `json:"clean"`
	Summary report.Summary `json:"summary"`
	Report  *report.Report `json:"report"`
}

// Handler handles HTTP requests for batch runs.
type Handler struct {
	service *Service
	allow   func(uri string) bool
}

// NewHandler creates a new HTTP handler. allow filters the locators remote
// callers may use; nil allows everything.
func NewHandler(service *Service, allow func(uri string) bool) *Handler {
	if allow == nil {
		allow = func(string) bool { return true }
	}
	return &Handler{service: service, allow: allow}
}

// RegisterRoutes registers the batch routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Post("/batch", h.HandleBatch)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleBatch runs a batch reconciliation and returns its report.
// With ?exit_code=true a non-clean report is answered with 409.
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	opts := Options{
		A:           req.A,
		B:           req.B,
		Batch:       true,
		Write:       req.Write,
		DiffPattern: req.Diff,
		JSONReport:  req.JSONReport,
		Threshold:   h.service.Defaults().Threshold,
		ExitCode:    utils.ToBool(c.Query("exit_code")),
	}
	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}

	for _, uri := range append([]string{req.A, req.B, req.Write}, report.ParseSinks(req.JSONReport)...) {
		if uri != "" && !h.allow(h.service.protocolify(uri)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "locator not allowed: " + uri,
			})
		}
	}

	rep, err := h.service.Batch(c.UserContext(), opts)
	if err != nil && !errors.Is(err, ErrChangesDetected) {
		l.Error("Batch run failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	status := fiber.StatusOK
	if err != nil {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(Response{
		Clean:   rep.Clean(),
		Summary: rep.Summary(),
		Report:  rep,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrConfig),
		errors.Is(err, locator.ErrUnsupportedLocator),
		errors.Is(err, locator.ErrNamingConstraint),
		errors.Is(err, resource.ErrDirectoryMisuse):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
