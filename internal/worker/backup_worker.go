package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/store"
)

const BackupPollTimeout = 1 * time.Second

// BackupWorker drains snapshot requests from the Redis queue and writes
// timestamped snapshot files. Snapshots are taken when the request is
// drained, not when it was enqueued, so the file always reflects the
// store's latest state.
type BackupWorker struct {
	store store.Store
	rdb   *redis.Client
	dir   string
	log   zerolog.Logger
}

// NewBackupWorker creates a new BackupWorker writing into dir.
func NewBackupWorker(st store.Store, rdb *redis.Client, dir string, log zerolog.Logger) *BackupWorker {
	return &BackupWorker{
		store: st,
		rdb:   rdb,
		dir:   dir,
		log:   log.With().Str("component", "backup_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop
// ----------------------------------------------------------------

func (w *BackupWorker) Start(ctx context.Context) {
	w.log.Info().Str("dir", w.dir).Msg("BackupWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. BackupWorker stopping...")
			return

		default:
			item, err := w.rdb.BLPop(ctx, BackupPollTimeout, config.WorkerKey.BackupSnapshotQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}
			w.writeSnapshot(ctx, item[1])
		}
	}
}

func (w *BackupWorker) writeSnapshot(ctx context.Context, requestedAt string) {
	snap, err := w.store.Snapshot(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("snapshot read failed")
		return
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		w.log.Error().Err(err).Msg("snapshot encode failed")
		return
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.Error().Err(err).Msg("backup dir create failed")
		return
	}

	name := fmt.Sprintf("snapshot_%s.json", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		w.log.Error().Err(err).Msg("snapshot write failed")
		return
	}

	w.log.Info().
		Str("file", path).
		Str("requested_at", requestedAt).
		Int("keys", len(snap)).
		Msg("snapshot written")
}
