package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"userhub-backend/internal/services"
)

// StatsHandler serves the dashboard's aggregate counts.
type StatsHandler struct {
	service services.StatsServiceProvider
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service services.StatsServiceProvider) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get returns the current aggregate over the whole collection.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Current()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute user stats")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
