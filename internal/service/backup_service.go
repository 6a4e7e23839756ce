package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/store"
)

var ErrBackupQueueUnavailable = errors.New("backup queue is not configured")

// BackupService produces and restores whole-store snapshots. Values travel
// verbatim: the service never inspects or validates them, so a non-JSON
// value survives a backup/restore cycle byte for byte.
type BackupService struct {
	store store.Store
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewBackupService creates a new BackupService. rdb may be nil when no
// queue transport is available; EnqueueSnapshot then fails softly.
func NewBackupService(st store.Store, rdb *redis.Client, log zerolog.Logger) *BackupService {
	return &BackupService{
		store: st,
		rdb:   rdb,
		log:   log.With().Str("component", "backup_service").Logger(),
	}
}

// Snapshot returns every store key and its raw string value.
func (s *BackupService) Snapshot(ctx context.Context) (map[string]string, error) {
	return s.store.Snapshot(ctx)
}

// Restore writes each snapshot key back verbatim, then bumps the revision
// key so hosts know to reload their state.
func (s *BackupService) Restore(ctx context.Context, snapshot map[string]string) error {
	for key, value := range snapshot {
		if key == config.StoreKey.Revision() {
			continue
		}
		if err := s.store.Set(ctx, key, value); err != nil {
			return err
		}
	}

	if err := s.store.Set(ctx, config.StoreKey.Revision(), uuid.NewString()); err != nil {
		return err
	}

	s.log.Info().Int("keys", len(snapshot)).Msg("snapshot restored")
	return nil
}

// Revision returns the current store revision, or empty when none exists.
func (s *BackupService) Revision(ctx context.Context) (string, error) {
	rev, _, err := s.store.Get(ctx, config.StoreKey.Revision())
	return rev, err
}

// EnqueueSnapshot asks the backup worker to write a snapshot file. The
// queued payload is just the request timestamp; the worker reads the store
// itself when it drains the queue.
func (s *BackupService) EnqueueSnapshot(ctx context.Context) error {
	if s.rdb == nil {
		return ErrBackupQueueUnavailable
	}
	requestedAt := time.Now().UTC().Format(time.RFC3339)
	return s.rdb.RPush(ctx, config.WorkerKey.BackupSnapshotQueue, requestedAt).Err()
}
