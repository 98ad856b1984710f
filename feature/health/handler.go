package health

import (
	"storage-gateway/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleLiveness)
	group.Get("/storage", h.HandleStorage)
}

// HandleLiveness reports that the process serves requests.
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /health [get]
func (h *Handler) HandleLiveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleStorage probes the configured storage driver.
// @Summary Storage Probe
// @Description Writes, reads back and deletes a probe object through the configured driver.
// @Tags health
// @Produce json
// @Success 200 {object} health.Report "Healthy"
// @Failure 503 {object} health.Report "Unhealthy"
// @Router /health/storage [get]
func (h *Handler) HandleStorage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.ProbeStorage(c.UserContext())
	if !report.Healthy() {
		l.Error("Storage unhealthy", zap.String("driver", report.Driver))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}

	l.Debug("Storage healthy", zap.Float64("latency_ms", report.LatencyMs))
	return c.JSON(report)
}
