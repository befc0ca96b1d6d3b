package services

import (
	"time"

	"userhub-backend/internal/models"
	"userhub-backend/internal/store"
)

// recentWindow is how far back a registration still counts as recent.
const recentWindow = 30 * 24 * time.Hour

// StatsServiceProvider defines the interface for stats services.
type StatsServiceProvider interface {
	Current() (models.Stats, error)
}

// StatsService computes descriptive counts over the user collection.
type StatsService struct {
	store *store.Store
}

// NewStatsService creates a new StatsService.
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

// Current loads a snapshot of the collection and aggregates it. Snapshot
// reads do not take the store's exclusive lock.
func (s *StatsService) Current() (models.Stats, error) {
	users, err := s.store.Load()
	if err != nil {
		return models.Stats{}, err
	}
	return ComputeStats(users, time.Now().UTC()), nil
}

// ComputeStats is a pure aggregate over the given collection at the given
// time. Records whose created_at does not parse are skipped for the recency
// count but still contribute to the other tallies. Empty countries are
// excluded from the per-country map.
func ComputeStats(users []models.User, now time.Time) models.Stats {
	stats := models.Stats{
		TotalUsers:     len(users),
		UsersByGender:  make(map[string]int),
		UsersByCountry: make(map[string]int),
	}

	cutoff := now.Add(-recentWindow)
	for _, u := range users {
		stats.UsersByGender[u.Gender]++
		if u.Country != "" {
			stats.UsersByCountry[u.Country]++
		}
		if created, err := time.Parse(models.TimeLayout, u.CreatedAt); err == nil && !created.Before(cutoff) {
			stats.RecentRegistrations++
		}
	}
	return stats
}
