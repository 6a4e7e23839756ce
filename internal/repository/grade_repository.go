package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/store"
)

// GradeRepository persists all grade entries as one JSON collection under a
// fixed store key.
type GradeRepository struct {
	store store.Store
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(st store.Store) *GradeRepository {
	return &GradeRepository{store: st}
}

// Load reads all grade entries. A missing key yields an empty set.
func (r *GradeRepository) Load(ctx context.Context) ([]model.GradeEntry, error) {
	raw, found, err := r.store.Get(ctx, config.StoreKey.Grades())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var entries []model.GradeEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode grades: %w", err)
	}
	return entries, nil
}

// Save replaces the full grade collection.
func (r *GradeRepository) Save(ctx context.Context, entries []model.GradeEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode grades: %w", err)
	}
	return r.store.Set(ctx, config.StoreKey.Grades(), string(raw))
}

// ListByClassSubject returns one class's entries for a subject and semester.
func (r *GradeRepository) ListByClassSubject(ctx context.Context, className, subject, semester string) ([]model.GradeEntry, error) {
	entries, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []model.GradeEntry
	for _, e := range entries {
		if e.ClassName == className && e.Subject == subject && e.Semester == semester {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
