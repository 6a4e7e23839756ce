package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
)

var (
	ErrScoreOutOfRange = errors.New("score must be between 0 and 100")
	ErrInvalidKind     = errors.New("unknown assessment kind")
	ErrTopicRequired   = errors.New("topic must be chosen in topic-keyed mode")
	ErrStudentRequired = errors.New("student id is required")
	ErrDateRequired    = errors.New("session date is required")
)

// GradeService records scores. Every write passes the eligibility gate: a
// pending score for an ineligible student is silently skipped — neither
// written nor erased.
type GradeService struct {
	gradeRepo         *repository.GradeRepository
	attendanceService *AttendanceService
	log               zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(gradeRepo *repository.GradeRepository, attendanceService *AttendanceService, log zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo:         gradeRepo,
		attendanceService: attendanceService,
		log:               log.With().Str("component", "grade_service").Logger(),
	}
}

// ScoreInput is one roster student's pending score in a batch save.
type ScoreInput struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Score       float64 `json:"score"`
}

// BatchResult reports what a batch save actually persisted.
type BatchResult struct {
	Saved      []model.GradeEntry `json:"saved"`
	SkippedIDs []string           `json:"skipped_ids"`
}

// Save upserts a single grade entry after validating its key and consulting
// the eligibility gate. The skipped flag is true when the gate rejected the
// student; no error is raised for that case.
func (s *GradeService) Save(ctx context.Context, entry model.GradeEntry) (*model.GradeEntry, bool, error) {
	if err := validateGradeEntry(&entry); err != nil {
		return nil, false, err
	}
	if entry.SessionDate == "" {
		// Topic-keyed saves may omit the date; record the save day.
		entry.SessionDate = time.Now().UTC().Format(model.DateLayout)
	}

	eligible, err := s.attendanceService.IsEligible(ctx, entry.StudentID, entry.ClassName, gradeSessionKey(entry))
	if err != nil {
		return nil, false, err
	}
	if !eligible {
		s.log.Debug().
			Str("student_id", entry.StudentID).
			Str("subject", entry.Subject).
			Msg("score skipped: student not eligible for session")
		return nil, true, nil
	}

	entries, err := s.gradeRepo.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	entries, stored := upsertGrade(entries, entry)
	if err := s.gradeRepo.Save(ctx, entries); err != nil {
		return nil, false, err
	}
	return &stored, false, nil
}

// SaveBatch records one assessment event's pending scores for a roster.
// The whole collection is loaded once, mutated in memory, and persisted
// once; ineligible students are skipped and reported in the result.
func (s *GradeService) SaveBatch(ctx context.Context, className, subject, semester string, kind model.AssessmentKind, session model.SessionKey, sessionDate string, inputs []ScoreInput) (*BatchResult, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if sessionDate == "" {
		if session.IsDateKeyed() {
			sessionDate = session.Date
		} else {
			sessionDate = time.Now().UTC().Format(model.DateLayout)
		}
	}

	// Validate every input before touching the store: a malformed batch
	// must not leave a partial write behind.
	pending := make([]model.GradeEntry, 0, len(inputs))
	for _, in := range inputs {
		entry := model.GradeEntry{
			StudentID:   in.StudentID,
			StudentName: in.StudentName,
			ClassName:   className,
			Subject:     subject,
			Kind:        kind,
			Score:       in.Score,
			SessionDate: sessionDate,
			Semester:    semester,
			Topic:       session.Topic,
			Occurrence:  session.Occurrence,
		}
		if err := validateGradeEntry(&entry); err != nil {
			return nil, err
		}
		pending = append(pending, entry)
	}

	gate, err := s.attendanceService.EligibilityGate(ctx, className, session)
	if err != nil {
		return nil, err
	}

	entries, err := s.gradeRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, entry := range pending {
		if !gate(entry.StudentID) {
			result.SkippedIDs = append(result.SkippedIDs, entry.StudentID)
			continue
		}
		var stored model.GradeEntry
		entries, stored = upsertGrade(entries, entry)
		result.Saved = append(result.Saved, stored)
	}

	if len(result.Saved) > 0 {
		if err := s.gradeRepo.Save(ctx, entries); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Str("class", className).
		Str("subject", subject).
		Str("session", session.String()).
		Int("saved", len(result.Saved)).
		Int("skipped", len(result.SkippedIDs)).
		Msg("grade batch saved")
	return result, nil
}

// ListByClassSubject returns one class's entries for a subject and semester.
func (s *GradeService) ListByClassSubject(ctx context.Context, className, subject, semester string) ([]model.GradeEntry, error) {
	return s.gradeRepo.ListByClassSubject(ctx, className, subject, semester)
}

// upsertGrade replaces the entry matching the natural key, preserving its
// original ID, or appends with a fresh ID. Returns the stored entry.
func upsertGrade(entries []model.GradeEntry, entry model.GradeEntry) ([]model.GradeEntry, model.GradeEntry) {
	key := entry.NaturalKey()
	for i := range entries {
		if entries[i].NaturalKey() == key {
			entry.ID = entries[i].ID
			entries[i] = entry
			return entries, entry
		}
	}
	entry.ID = uuid.NewString()
	return append(entries, entry), entry
}

// gradeSessionKey derives the session the entry belongs to, for the
// eligibility lookup.
func gradeSessionKey(entry model.GradeEntry) model.SessionKey {
	if entry.Topic != "" {
		return model.TopicKey(entry.Topic, entry.Occurrence)
	}
	return model.DateKey(entry.SessionDate)
}

// validateGradeEntry checks the composite key and score range before any
// store mutation. Topic-keyed mode is implied by a non-zero Topic or
// Occurrence; having one without the other is the malformed-key case.
func validateGradeEntry(entry *model.GradeEntry) error {
	if entry.StudentID == "" {
		return ErrStudentRequired
	}
	if !entry.Kind.Valid() {
		return ErrInvalidKind
	}
	if entry.Score < 0 || entry.Score > 100 {
		return ErrScoreOutOfRange
	}

	topicMode := entry.Topic != "" || entry.Occurrence != 0
	if topicMode {
		if entry.Topic == "" {
			return ErrTopicRequired
		}
		if entry.Occurrence < 1 {
			return model.ErrOccurrenceRequired
		}
		return nil
	}

	if entry.SessionDate == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(model.DateLayout, entry.SessionDate); err != nil {
		return model.ErrInvalidDate
	}
	return nil
}
