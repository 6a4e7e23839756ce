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
	ErrInvalidStatus = errors.New("unknown attendance status")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)

// AttendanceService owns attendance sheets, the eligibility gate derived
// from them, and the monthly tally.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	studentRepo    *repository.StudentRepository
	log            zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, studentRepo *repository.StudentRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		log:            log.With().Str("component", "attendance_service").Logger(),
	}
}

// SaveSheet upserts the attendance sheet for one (class, session) key.
// Records are replaced wholesale; at most one entry exists per key. The
// stored entry (with its ID) is returned.
func (s *AttendanceService) SaveSheet(ctx context.Context, entry model.AttendanceEntry) (*model.AttendanceEntry, error) {
	if err := entry.Session.Validate(); err != nil {
		return nil, err
	}
	for _, rec := range entry.Records {
		if !rec.Status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	entries, err := s.attendanceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	entry.SavedAt = time.Now().UTC()
	want := entry.Session.String()
	replaced := false
	for i := range entries {
		if entries[i].ClassName == entry.ClassName && entries[i].Session.String() == want {
			entry.ID = entries[i].ID
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entry.ID = uuid.NewString()
		entries = append(entries, entry)
	}

	if err := s.attendanceRepo.Save(ctx, entries); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("class", entry.ClassName).
		Str("session", want).
		Int("records", len(entry.Records)).
		Bool("replaced", replaced).
		Msg("attendance sheet saved")
	return &entry, nil
}

// GetSheet returns the sheet for the exact session key. Absence is a normal
// outcome, not an error.
func (s *AttendanceService) GetSheet(ctx context.Context, className string, key model.SessionKey) (*model.AttendanceEntry, bool, error) {
	if err := key.Validate(); err != nil {
		return nil, false, err
	}
	return s.attendanceRepo.FindBySession(ctx, className, key)
}

// ListByClass returns every attendance entry recorded for a class.
func (s *AttendanceService) ListByClass(ctx context.Context, className string) ([]model.AttendanceEntry, error) {
	return s.attendanceRepo.ListByClass(ctx, className)
}

// IsEligible reports whether a student may receive a grade for the session.
// When no attendance sheet exists for the key, every student is eligible —
// grading is never blocked retroactively. When one exists, only a recorded
// Hadir status qualifies; any other status, or absence from the sheet,
// makes the student ineligible.
func (s *AttendanceService) IsEligible(ctx context.Context, studentID, className string, key model.SessionKey) (bool, error) {
	gate, err := s.EligibilityGate(ctx, className, key)
	if err != nil {
		return false, err
	}
	return gate(studentID), nil
}

// EligibilityGate loads the session's sheet once and returns a predicate
// over student IDs, for callers gating a whole roster.
func (s *AttendanceService) EligibilityGate(ctx context.Context, className string, key model.SessionKey) (func(studentID string) bool, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	entry, found, err := s.attendanceRepo.FindBySession(ctx, className, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return func(string) bool { return true }, nil
	}

	present := make(map[string]bool, len(entry.Records))
	for _, rec := range entry.Records {
		if rec.Status == model.StatusPresent {
			present[rec.StudentID] = true
		}
	}
	return func(studentID string) bool { return present[studentID] }, nil
}

// Tally folds one class's date-keyed attendance over a calendar month into
// per-student status counts. Topic-keyed entries carry no session date and
// are excluded. Rows follow roster order; recorded statuses of students no
// longer on the roster are dropped.
func (s *AttendanceService) Tally(ctx context.Context, className string, month, year int) ([]model.TallyRow, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	roster, err := s.studentRepo.ListByClass(ctx, className)
	if err != nil {
		return nil, err
	}
	entries, err := s.attendanceRepo.ListByClass(ctx, className)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]*model.TallyRow, len(roster))
	rows := make([]model.TallyRow, len(roster))
	for i, st := range roster {
		rows[i] = model.TallyRow{StudentID: st.ID, StudentName: st.Name, NIS: st.NIS}
		counts[st.ID] = &rows[i]
	}

	for _, e := range entries {
		if !e.Session.IsDateKeyed() {
			continue
		}
		date, err := time.Parse(model.DateLayout, e.Session.Date)
		if err != nil || date.Year() != year || int(date.Month()) != month {
			continue
		}
		for _, rec := range e.Records {
			row, ok := counts[rec.StudentID]
			if !ok {
				continue
			}
			switch rec.Status {
			case model.StatusPresent:
				row.Present++
			case model.StatusSick:
				row.Sick++
			case model.StatusExcused:
				row.Excused++
			case model.StatusAbsent:
				row.Absent++
			}
			row.Total = row.Present + row.Sick + row.Excused + row.Absent
		}
	}

	return rows, nil
}
