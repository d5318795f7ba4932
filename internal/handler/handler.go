// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/udukunda1/usersvc/internal/handler/dto"
)

// Error codes and messages shared by every handler.
const (
	errNotFound      = "Not found"
	msgNotFound      = "The requested endpoint does not exist"
	errInternal      = "Internal server error"
	msgInternal      = "An unexpected error occurred"
	errInvalidJSON   = "Invalid JSON"
	msgInvalidJSON   = "Request body must be a valid JSON object"
	errPayloadTooBig = "Payload too large"
	msgPayloadTooBig = "Request body exceeds the maximum allowed size"
)

// Handler serves the routes that have no domain dependencies.
type Handler struct {
	logger *slog.Logger
}

// New creates a new Handler instance.
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// NotFound handles any method and path without a registered route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("route not found", "method", r.Method, "path", r.URL.Path)
	writeError(w, http.StatusNotFound, errNotFound, msgNotFound)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
