package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
)

// ImportService applies the bulk-import merge rule to every collection:
// by ID, replace if present in the existing collection, else append.
// Records arriving without an ID are appended under a fresh one.
type ImportService struct {
	studentRepo    *repository.StudentRepository
	gradeRepo      *repository.GradeRepository
	attendanceRepo *repository.AttendanceRepository
	log            zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(studentRepo *repository.StudentRepository, gradeRepo *repository.GradeRepository, attendanceRepo *repository.AttendanceRepository, log zerolog.Logger) *ImportService {
	return &ImportService{
		studentRepo:    studentRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
		log:            log.With().Str("component", "import_service").Logger(),
	}
}

// ImportStudents merges roster rows into the stored roster and returns the
// resulting collection.
func (s *ImportService) ImportStudents(ctx context.Context, reqs []model.ImportStudentRequest) ([]model.Student, error) {
	incoming := make([]model.Student, 0, len(reqs))
	for _, req := range reqs {
		incoming = append(incoming, model.Student{
			ID:        req.ID,
			Name:      req.Name,
			NIS:       req.NIS,
			ClassCode: req.ClassCode,
			Gender:    req.Gender,
		})
	}

	existing, err := s.studentRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	merged := mergeByID(existing, incoming,
		func(st model.Student) string { return st.ID },
		func(st *model.Student, id string) { st.ID = id },
	)
	if err := s.studentRepo.Save(ctx, merged); err != nil {
		return nil, err
	}

	s.log.Info().Int("imported", len(incoming)).Int("total", len(merged)).Msg("students imported")
	return merged, nil
}

// ImportGrades merges grade entries and returns the resulting total count.
func (s *ImportService) ImportGrades(ctx context.Context, incoming []model.GradeEntry) (int, error) {
	existing, err := s.gradeRepo.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := mergeByID(existing, incoming,
		func(e model.GradeEntry) string { return e.ID },
		func(e *model.GradeEntry, id string) { e.ID = id },
	)
	if err := s.gradeRepo.Save(ctx, merged); err != nil {
		return 0, err
	}
	return len(merged), nil
}

// ImportAttendance merges attendance entries and returns the resulting
// total count.
func (s *ImportService) ImportAttendance(ctx context.Context, incoming []model.AttendanceEntry) (int, error) {
	existing, err := s.attendanceRepo.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := mergeByID(existing, incoming,
		func(e model.AttendanceEntry) string { return e.ID },
		func(e *model.AttendanceEntry, id string) { e.ID = id },
	)
	if err := s.attendanceRepo.Save(ctx, merged); err != nil {
		return 0, err
	}
	return len(merged), nil
}

// mergeByID is the shared merge rule: replace the existing record bearing
// the same ID, else append. Records without an ID get a generated one.
func mergeByID[T any](existing, incoming []T, getID func(T) string, setID func(*T, string)) []T {
	index := make(map[string]int, len(existing))
	for i, rec := range existing {
		index[getID(rec)] = i
	}

	merged := append([]T(nil), existing...)
	for _, rec := range incoming {
		id := getID(rec)
		if id == "" {
			setID(&rec, uuid.NewString())
			merged = append(merged, rec)
			continue
		}
		if i, ok := index[id]; ok {
			merged[i] = rec
		} else {
			index[id] = len(merged)
			merged = append(merged, rec)
		}
	}
	return merged
}
