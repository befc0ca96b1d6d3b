package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"userhub-backend/internal/models"
)

// Store is the handle to the JSON file holding the user collection. Every
// mutation re-reads the file, applies the change and rewrites the whole
// collection; no copy is cached between calls.
type Store struct {
	path     string
	lockPath string
}

// Open prepares a store handle at the given path, creating the parent
// directory and an empty collection file if they do not exist yet.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s := &Store{path: path, lockPath: path + ".lock"}

	// Initialize under the same lock Mutate takes. An unlocked create could
	// rename an empty collection over a mutation another handle just
	// committed, and two concurrent opens would clobber each other's temp
	// file.
	fl := flock.New(s.lockPath)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock store: %w", err)
	}
	defer fl.Unlock()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.persist([]models.User{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat store file: %w", err)
	}

	return s, nil
}

// Close invalidates the handle. The advisory lock file is deliberately left
// in place: unlinking it while another process holds the lock would let a
// later opener lock a fresh inode and void mutual exclusion.
func (s *Store) Close() error {
	return nil
}

// Path returns the location of the collection file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current collection snapshot without taking the exclusive
// lock. The result may be immediately stale; that is fine for reads that do
// not feed a mutation. A corrupt file is backed up and reset to empty.
func (s *Store) Load() ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	users, err := Decode(data)
	if errors.Is(err, ErrCorruptStore) {
		return s.recoverCorrupt(data, err)
	}
	return users, err
}

// Snapshot returns the raw bytes of the collection file, for backup copies.
func (s *Store) Snapshot() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Encode([]models.User{})
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return data, nil
}

// Mutate runs fn over the freshly loaded collection while holding the
// store's exclusive advisory lock, then persists whatever fn returns. An
// error from fn aborts the mutation with the file untouched. The lock spans
// the whole read-mutate-write window so two concurrent mutations cannot
// clobber each other's change.
func (s *Store) Mutate(fn func(users []models.User) ([]models.User, error)) error {
	// A fresh flock per call opens its own descriptor, so concurrent
	// goroutines in this process exclude each other the same way other
	// processes do.
	fl := flock.New(s.lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer fl.Unlock()

	users, err := s.Load()
	if err != nil {
		return err
	}

	next, err := fn(users)
	if err != nil {
		return err
	}

	return s.persist(next)
}

// persist writes the collection to a sibling temp file, syncs it and
// atomically renames it over the destination. On any failure the temp file
// is removed and the destination keeps its previous contents.
func (s *Store) persist(users []models.User) error {
	data, err := Encode(users)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp store file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// recoverCorrupt keeps a timestamped copy of the unreadable file, resets the
// store to an empty collection and returns that empty collection. The
// operation is logged but never surfaced to end users.
func (s *Store) recoverCorrupt(data []byte, cause error) ([]models.User, error) {
	backup := fmt.Sprintf("%s.backup.%s", s.path, time.Now().UTC().Format("2006-01-02_15-04-05"))
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return nil, fmt.Errorf("back up corrupt store file: %w", err)
	}

	log.Error().Err(cause).Str("backup", backup).Msg("Store file is corrupt, resetting to empty collection")

	if err := s.persist([]models.User{}); err != nil {
		return nil, err
	}
	return []models.User{}, nil
}
