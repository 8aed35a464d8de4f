package response

import (
	"encoding/json"
	"net/http"

	"github.com/futig/career-agent/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing left to report to the client.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response. Field and rule are set only for contract violations.
func Error(w http.ResponseWriter, status int, message string, field, rule string) {
	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Field:   field,
		Rule:    rule,
	})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
