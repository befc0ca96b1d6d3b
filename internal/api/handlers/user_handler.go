package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"userhub-backend/internal/models"
	"userhub-backend/internal/services"
)

// UserHandler handles the REST profile endpoints.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitized())
}

// Find handles looking a user up by the username query parameter.
func (h *UserHandler) Find(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUserByUsername(username)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			log.Error().Err(err).Str("username", username).Msg("Failed to get user by username")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitized())
}

// Update handles merging profile changes into a user record.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(id, payload)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, services.ErrEmailTaken):
		http.Error(w, "Email already exists", http.StatusConflict)
	case err != nil:
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, user.Sanitized())
	}
}

// Delete handles the permanent deletion of a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.service.DeleteUser(id)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case err != nil:
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
