package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retailpulse/pkg/contracts"
)

// HealthHandler handles health-related HTTP requests.
type HealthHandler struct {
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now(),
	}
}

// RegisterRoutes registers the health routes.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HealthCheck)
	r.Get("/version", h.Version)
}

// HealthCheck handles GET /api/v1/healthz.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Version handles GET /api/v1/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
