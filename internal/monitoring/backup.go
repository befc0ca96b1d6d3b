package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"userhub-backend/internal/store"
)

// BackupRunner periodically copies the user store file into the backup
// directory on a cron schedule. It runs entirely off the request path.
type BackupRunner struct {
	store    *store.Store
	dir      string
	schedule cron.Schedule
	ticker   *time.Ticker
	done     chan bool
}

// NewBackupRunner creates a runner for the given cron expression
// (standard 5-field syntax).
func NewBackupRunner(st *store.Store, dir, cronExpr string) (*BackupRunner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", cronExpr, err)
	}
	return &BackupRunner{
		store:    st,
		dir:      dir,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the runner's ticking loop.
func (r *BackupRunner) Run() {
	log.Info().Str("dir", r.dir).Msg("Starting store backup runner...")
	r.ticker = time.NewTicker(1 * time.Minute)
	defer r.ticker.Stop()

	next := r.schedule.Next(time.Now())
	for {
		select {
		case <-r.done:
			log.Info().Msg("Stopping store backup runner.")
			return
		case now := <-r.ticker.C:
			if now.After(next) {
				if err := r.backupOnce(); err != nil {
					log.Error().Err(err).Msg("Store backup failed")
				}
				next = r.schedule.Next(now)
			}
		}
	}
}

// Stop halts the runner.
func (r *BackupRunner) Stop() {
	r.done <- true
}

func (r *BackupRunner) backupOnce() error {
	data, err := r.store.Snapshot()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("users-%s.json", time.Now().UTC().Format("2006-01-02_15-04-05"))
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("Store backup written")
	return nil
}
