package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/udukunda1/usersvc/internal/handler/dto"
	"github.com/udukunda1/usersvc/internal/model"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	cache HealthChecker
	now   func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for cache when Redis is not configured.
func NewHealthHandler(cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		cache: cache,
		now:   time.Now,
	}
}

// ReadinessResponse represents the readiness check response.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health is the liveness endpoint. It never touches the user store.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Timestamp: model.FormatTimestamp(h.now()),
	})
}

// Readyz is a readiness probe endpoint.
// It returns 503 when a configured dependency fails its ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, ReadinessResponse{
		Status: status,
		Checks: checks,
	})
}
