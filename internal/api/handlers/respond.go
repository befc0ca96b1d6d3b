package handlers

import (
	"encoding/json"
	"net/http"

	"userhub-backend/internal/models"
)

// apiResponse is the envelope the auth endpoint speaks.
type apiResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, apiResponse{Success: success, Message: message})
}
