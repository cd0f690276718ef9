package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doafacil/doafacil/internal/validation"
)

// apiResponse is the uniform envelope every endpoint returns.
type apiResponse struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// respondSuccess sends a success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, apiResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{
		Success: false,
		Error:   message,
	})
}

// respondValidationError sends a 400 with per-field detail.
func respondValidationError(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Error:   "Validation failed",
		Details: errs,
	})
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
