package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"userhub-backend/internal/config"
	"userhub-backend/internal/models"
	"userhub-backend/internal/services"
)

// AuthHandler serves the action-dispatching auth endpoint.
type AuthHandler struct {
	service services.UserServiceProvider
	cfg     *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg}
}

// authPayload is the request body for both actions; login only uses
// username/password.
type authPayload struct {
	Action          string   `json:"action"`
	Fullname        string   `json:"fullname"`
	Email           string   `json:"email"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Gender          string   `json:"gender"`
	Hobbies         []string `json:"hobbies"`
	Country         string   `json:"country"`
}

// Handle dispatches on the payload's action field: "register" or "login".
func (h *AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload authPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid JSON data")
		return
	}

	switch payload.Action {
	case "":
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request - missing action")
	case "register":
		h.register(w, payload)
	case "login":
		h.login(w, payload)
	default:
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid action")
	}
}

func (h *AuthHandler) register(w http.ResponseWriter, p authPayload) {
	errs := validateRegistration(p, h.cfg.PasswordMinLength, h.cfg.UsernameMinLength)

	// Availability pre-check for friendlier messages; the service re-checks
	// under the store lock before appending.
	if p.Username != "" {
		if taken, err := h.service.UsernameExists(p.Username); err == nil && taken {
			errs = append(errs, "Username already exists")
		}
	}
	if p.Email != "" {
		if taken, err := h.service.EmailExists(p.Email); err == nil && taken {
			errs = append(errs, "Email already exists")
		}
	}

	if len(errs) > 0 {
		writeEnvelope(w, http.StatusOK, false, strings.Join(errs, "<br>"))
		return
	}

	_, err := h.service.Register(models.UserDraft{
		Fullname: p.Fullname,
		Email:    p.Email,
		Username: p.Username,
		Password: p.Password,
		Gender:   p.Gender,
		Hobbies:  p.Hobbies,
		Country:  p.Country,
	})
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		writeEnvelope(w, http.StatusOK, false, "Username already exists")
	case errors.Is(err, services.ErrEmailTaken):
		writeEnvelope(w, http.StatusOK, false, "Email already exists")
	case err != nil:
		log.Error().Err(err).Str("username", p.Username).Msg("Failed to register user")
		writeEnvelope(w, http.StatusInternalServerError, false, "Registration failed. Please try again.")
	default:
		writeEnvelope(w, http.StatusOK, true, "Registration successful! You can now login.")
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, p authPayload) {
	if errs := validateLogin(p, h.cfg.UsernameMinLength); len(errs) > 0 {
		writeEnvelope(w, http.StatusOK, false, strings.Join(errs, "<br>"))
		return
	}

	user, err := h.service.Authenticate(p.Username, p.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn().Str("username", p.Username).Msg("Failed login attempt")
		writeEnvelope(w, http.StatusOK, false, "Invalid username or password")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("username", p.Username).Msg("Login failed")
		writeEnvelope(w, http.StatusInternalServerError, false, "Login failed. Please try again.")
		return
	}

	sanitized := user.Sanitized()
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Welcome back, " + sanitized.Fullname + "!",
		User:    &sanitized,
	})
}
