package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/udukunda1/usersvc/internal/handler/dto"
)

// writeError writes the standard {error, message} body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
