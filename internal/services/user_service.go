package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"userhub-backend/internal/models"
	"userhub-backend/internal/store"
	ws "userhub-backend/internal/websocket"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(draft models.UserDraft) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	UpdateUser(id string, upd models.UserUpdate) (models.User, error)
	DeleteUser(id string) error
}

// UserService provides business logic for user management on top of the
// file-backed store. Every call loads a fresh collection; nothing is cached
// between requests.
type UserService struct {
	store *store.Store
	hub   *ws.Hub
}

// NewUserService creates a new UserService. hub may be nil when no live
// stats feed is wanted (tests).
func NewUserService(st *store.Store, hub *ws.Hub) *UserService {
	return &UserService{store: st, hub: hub}
}

// Register hashes the draft's password, assigns generated fields and appends
// the record. Uniqueness is re-checked against the freshly loaded collection
// inside the store's locked mutation, so a stale pre-check earlier in the
// request cannot let a duplicate slip through.
func (s *UserService) Register(draft models.UserDraft) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := models.Now()
	user := models.User{
		ID:        uuid.New().String(),
		Fullname:  strings.TrimSpace(draft.Fullname),
		Email:     strings.TrimSpace(draft.Email),
		Username:  strings.TrimSpace(draft.Username),
		Password:  string(hashed),
		Gender:    draft.Gender,
		Hobbies:   draft.Hobbies,
		Country:   strings.TrimSpace(draft.Country),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Hobbies == nil {
		user.Hobbies = []string{}
	}

	err = s.store.Mutate(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Username == user.Username {
				return nil, ErrUsernameTaken
			}
			if strings.EqualFold(u.Email, user.Email) {
				return nil, ErrEmailTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.publishStats()
	return user, nil
}

// Authenticate verifies a user's credentials. The returned record still
// carries the stored hash; callers strip it before responding. Unknown
// username and wrong password produce the identical failure.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	users, err := s.store.Load()
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Username == username &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.ID == id })
}

// GetUserByUsername retrieves a single user by username (case-sensitive).
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

// GetUserByEmail retrieves a single user by email (case-insensitive).
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

// UsernameExists reports whether the username is already registered.
func (s *UserService) UsernameExists(username string) (bool, error) {
	_, err := s.GetUserByUsername(username)
	if err == ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EmailExists reports whether the email is already registered, compared
// case-insensitively.
func (s *UserService) EmailExists(email string) (bool, error) {
	_, err := s.GetUserByEmail(email)
	if err == ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateUser merges the supplied fields into the matching record and
// refreshes updated_at. Changing the email keeps the collection's
// uniqueness invariant.
func (s *UserService) UpdateUser(id string, upd models.UserUpdate) (models.User, error) {
	var updated models.User

	err := s.store.Mutate(func(users []models.User) ([]models.User, error) {
		idx := -1
		for i, u := range users {
			if u.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrUserNotFound
		}

		u := users[idx]
		if upd.Fullname != nil {
			u.Fullname = strings.TrimSpace(*upd.Fullname)
		}
		if upd.Email != nil {
			email := strings.TrimSpace(*upd.Email)
			for i, other := range users {
				if i != idx && strings.EqualFold(other.Email, email) {
					return nil, ErrEmailTaken
				}
			}
			u.Email = email
		}
		if upd.Gender != nil {
			u.Gender = *upd.Gender
		}
		if upd.Hobbies != nil {
			u.Hobbies = *upd.Hobbies
			if u.Hobbies == nil {
				u.Hobbies = []string{}
			}
		}
		if upd.Country != nil {
			u.Country = strings.TrimSpace(*upd.Country)
		}
		u.UpdatedAt = models.Now()

		users[idx] = u
		updated = u
		return users, nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.publishStats()
	return updated, nil
}

// DeleteUser removes the matching record. Deleting an already-deleted ID
// returns ErrUserNotFound and leaves the collection untouched; IDs are never
// reused because they are generated, not recycled.
func (s *UserService) DeleteUser(id string) error {
	err := s.store.Mutate(func(users []models.User) ([]models.User, error) {
		remaining := make([]models.User, 0, len(users))
		found := false
		for _, u := range users {
			if u.ID == id {
				found = true
				continue
			}
			remaining = append(remaining, u)
		}
		if !found {
			return nil, ErrUserNotFound
		}
		return remaining, nil
	})
	if err != nil {
		return err
	}

	s.publishStats()
	return nil
}

func (s *UserService) findUser(match func(models.User) bool) (models.User, error) {
	users, err := s.store.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// publishStats pushes a fresh aggregate to connected dashboards after a
// successful mutation.
func (s *UserService) publishStats() {
	if s.hub == nil {
		return
	}

	users, err := s.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load users for stats broadcast")
		return
	}

	msg, err := json.Marshal(ws.NewStatsMessage(ComputeStats(users, time.Now().UTC())))
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode stats broadcast")
		return
	}
	s.hub.Broadcast <- msg
}
