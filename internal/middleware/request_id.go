// Package middleware provides HTTP middleware components.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

// RequestIDKey is the context key for request ID.
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is the HTTP header for request ID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps client-supplied request IDs.
const maxRequestIDLength = 128

// RequestID injects a unique request ID into each request.
// If the X-Request-ID header is present, it uses that value.
// Otherwise, it generates a new UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := normalizeRequestID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > maxRequestIDLength {
		candidate = candidate[:maxRequestIDLength]
	}
	return candidate
}
