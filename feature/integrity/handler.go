package integrity

import (
	"errors"

	"imgdiff/core/locator"
	"imgdiff/core/logger"
	"imgdiff/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
	allow   func(uri string) bool
}

// NewHandler creates a new HTTP handler. allow filters the roots callers may
// inspect; nil allows everything.
func NewHandler(service *Service, allow func(uri string) bool) *Handler {
	if allow == nil {
		allow = func(string) bool { return true }
	}
	return &Handler{service: service, allow: allow}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/integrity", h.HandleIntegrityCheck)
}

// HandleIntegrityCheck checks the batch root given by ?root=.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	root := c.Query("root")
	if root == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing root parameter",
		})
	}
	if !h.allow(h.service.Resolve(root)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "locator not allowed: " + root,
		})
	}

	rep, err := h.service.Check(c.UserContext(), root)
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, checks.ErrRootMissing):
			status = fiber.StatusNotFound
		case errors.Is(err, locator.ErrUnsupportedLocator), errors.Is(err, locator.ErrNamingConstraint):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rep)
}
