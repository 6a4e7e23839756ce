package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/store"
)

// StudentRepository persists the student roster as one JSON collection
// under a fixed store key.
type StudentRepository struct {
	store store.Store
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(st store.Store) *StudentRepository {
	return &StudentRepository{store: st}
}

// Load reads the full roster. A missing key yields an empty roster.
func (r *StudentRepository) Load(ctx context.Context) ([]model.Student, error) {
	raw, found, err := r.store.Get(ctx, config.StoreKey.Students())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var students []model.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// Save replaces the full roster.
func (r *StudentRepository) Save(ctx context.Context, students []model.Student) error {
	raw, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("encode students: %w", err)
	}
	return r.store.Set(ctx, config.StoreKey.Students(), string(raw))
}

// ListByClass returns the roster members of one class, ordered by name.
func (r *StudentRepository) ListByClass(ctx context.Context, classCode string) ([]model.Student, error) {
	students, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	var roster []model.Student
	for _, s := range students {
		if s.ClassCode == classCode {
			roster = append(roster, s)
		}
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	return roster, nil
}

// Classes returns the distinct class codes present in the roster, sorted.
func (r *StudentRepository) Classes(ctx context.Context) ([]string, error) {
	students, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var classes []string
	for _, s := range students {
		if s.ClassCode != "" && !seen[s.ClassCode] {
			seen[s.ClassCode] = true
			classes = append(classes, s.ClassCode)
		}
	}
	sort.Strings(classes)
	return classes, nil
}
