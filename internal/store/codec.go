package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"userhub-backend/internal/models"
)

// ErrCorruptStore signals that the store file exists but does not hold a
// valid user collection. Callers choose the recovery policy.
var ErrCorruptStore = errors.New("store file is corrupt")

// Decode parses raw store file contents into a user collection. Empty or
// missing content yields an empty collection rather than an error.
func Decode(data []byte) ([]models.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if users == nil {
		// The file held "null"; treat it the same as an empty array.
		users = []models.User{}
	}
	return users, nil
}

// Encode serializes the collection as an indented JSON array. HTML escaping
// is disabled so non-ASCII names survive round trips unmangled.
func Encode(users []models.User) ([]byte, error) {
	if users == nil {
		users = []models.User{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	return buf.Bytes(), nil
}
