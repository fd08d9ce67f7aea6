// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fridgenet/internal/fault"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// Success writes the {success:true, data:...} envelope used by the
// checkout and add-item endpoints.
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// StatusFor maps a taxonomy error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, fault.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, fault.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fault.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, fault.ErrPartialFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the bare {error:...} shape used by load, lock and unlock.
// Internal detail is logged, never returned.
func Error(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	JSON(w, status, map[string]string{"error": fault.Code(err)})
}

// Failure writes the {success:false, error:...} envelope used by the
// checkout and add-item endpoints.
func Failure(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   fault.Code(err),
	})
}
