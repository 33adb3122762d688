package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler reports service liveness and report freshness
type HealthHandler struct {
	startedAt   time.Time
	generatedAt time.Time
	countries   int
}

// NewHealthHandler creates a health handler
func NewHealthHandler(generatedAt time.Time, countries int) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		generatedAt: generatedAt,
		countries:   countries,
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.GetHealth)
}

// GetHealth returns service status and report metadata
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":              "healthy",
		"uptime":              time.Since(h.startedAt).String(),
		"report_generated_at": h.generatedAt,
		"countries":           h.countries,
	})
}
