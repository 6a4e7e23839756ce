package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/store"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemoryStore()
	require.NoError(t, src.Set(ctx, config.StoreKey.Students(), `[{"id":"s1"}]`))
	require.NoError(t, src.Set(ctx, config.StoreKey.Grades(), `[]`))
	// Snapshot values are opaque: a non-JSON value travels verbatim.
	require.NoError(t, src.Set(ctx, "freeform", "bukan json"))

	srcSvc := NewBackupService(src, nil, zerolog.Nop())
	snap, err := srcSvc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)

	dst := store.NewMemoryStore()
	dstSvc := NewBackupService(dst, nil, zerolog.Nop())
	require.NoError(t, dstSvc.Restore(ctx, snap))

	for key, want := range snap {
		got, found, err := dst.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found, "key %s", key)
		require.Equal(t, want, got, "key %s must be written back verbatim", key)
	}
}

func TestRestoreBumpsRevision(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewBackupService(st, nil, zerolog.Nop())

	before, err := svc.Revision(ctx)
	require.NoError(t, err)
	require.Empty(t, before)

	require.NoError(t, svc.Restore(ctx, map[string]string{"students": "[]"}))
	first, err := svc.Revision(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// A snapshot carrying a stale revision must not win over the bump.
	require.NoError(t, svc.Restore(ctx, map[string]string{
		config.StoreKey.Revision(): "stale",
		"students":                 "[]",
	}))
	second, err := svc.Revision(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "stale", second)
	require.NotEqual(t, first, second)
}

func TestEnqueueWithoutQueueFailsSoftly(t *testing.T) {
	svc := NewBackupService(store.NewMemoryStore(), nil, zerolog.Nop())
	err := svc.EnqueueSnapshot(context.Background())
	require.ErrorIs(t, err, ErrBackupQueueUnavailable)
}
