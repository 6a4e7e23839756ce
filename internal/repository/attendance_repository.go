package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/store"
)

// AttendanceRepository persists all attendance entries as one JSON
// collection under a fixed store key.
type AttendanceRepository struct {
	store store.Store
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(st store.Store) *AttendanceRepository {
	return &AttendanceRepository{store: st}
}

// Load reads all attendance entries. A missing key yields an empty set.
func (r *AttendanceRepository) Load(ctx context.Context) ([]model.AttendanceEntry, error) {
	raw, found, err := r.store.Get(ctx, config.StoreKey.Attendance())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var entries []model.AttendanceEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return entries, nil
}

// Save replaces the full attendance collection.
func (r *AttendanceRepository) Save(ctx context.Context, entries []model.AttendanceEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode attendance: %w", err)
	}
	return r.store.Set(ctx, config.StoreKey.Attendance(), string(raw))
}

// FindBySession returns the entry for the exact (class, session) key.
// Absence is a normal outcome reported through the found flag.
func (r *AttendanceRepository) FindBySession(ctx context.Context, className string, key model.SessionKey) (*model.AttendanceEntry, bool, error) {
	entries, err := r.Load(ctx)
	if err != nil {
		return nil, false, err
	}

	want := key.String()
	for i := range entries {
		if entries[i].ClassName == className && entries[i].Session.String() == want {
			return &entries[i], true, nil
		}
	}
	return nil, false, nil
}

// ListByClass returns all entries recorded for one class.
func (r *AttendanceRepository) ListByClass(ctx context.Context, className string) ([]model.AttendanceEntry, error) {
	entries, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []model.AttendanceEntry
	for _, e := range entries {
		if e.ClassName == className {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
