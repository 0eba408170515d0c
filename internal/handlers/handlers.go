package handlers

import (
	"encoding/json"
	"net/http"

	"danawise/internal/validator"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondValidation(w http.ResponseWriter, fields []validator.FieldError) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Validation error",
		"errors":  fields,
	})
}
