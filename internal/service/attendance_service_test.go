package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
	"github.com/siswadata/rapor-backend/internal/store"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store          *store.MemoryStore
	studentRepo    *repository.StudentRepository
	attendanceRepo *repository.AttendanceRepository
	gradeRepo      *repository.GradeRepository
	attendance     *AttendanceService
	grades         *GradeService
	recap          *RecapService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	studentRepo := repository.NewStudentRepository(st)
	attendanceRepo := repository.NewAttendanceRepository(st)
	gradeRepo := repository.NewGradeRepository(st)

	log := zerolog.Nop()
	attendance := NewAttendanceService(attendanceRepo, studentRepo, log)
	return &testEnv{
		store:          st,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		gradeRepo:      gradeRepo,
		attendance:     attendance,
		grades:         NewGradeService(gradeRepo, attendance, log),
		recap:          NewRecapService(gradeRepo, studentRepo, log),
	}
}

func (e *testEnv) seedRoster(t *testing.T, students ...model.Student) {
	t.Helper()
	require.NoError(t, e.studentRepo.Save(context.Background(), students))
}

func sheet(class string, key model.SessionKey, records ...model.AttendanceRecord) model.AttendanceEntry {
	return model.AttendanceEntry{ClassName: class, Session: key, Records: records}
}

func rec(id string, status model.Status) model.AttendanceRecord {
	return model.AttendanceRecord{StudentID: id, StudentName: "Siswa " + id, Status: status}
}

func TestSaveSheetUpsertsBySessionKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	key := model.DateKey("2026-03-02")

	first, err := env.attendance.SaveSheet(ctx, sheet("1A", key, rec("s1", model.StatusPresent)))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := env.attendance.SaveSheet(ctx, sheet("1A", key,
		rec("s1", model.StatusSick),
		rec("s2", model.StatusPresent),
	))
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "re-saving the same session must reuse the entry ID")

	entries, err := env.attendanceRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "one entry per session key")
	require.Len(t, entries[0].Records, 2, "records are replaced wholesale")
	require.Equal(t, model.StatusSick, entries[0].Records[0].Status)

	// A different session key appends instead.
	_, err = env.attendance.SaveSheet(ctx, sheet("1A", model.DateKey("2026-03-03"), rec("s1", model.StatusPresent)))
	require.NoError(t, err)
	entries, err = env.attendanceRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestSaveSheetRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.SaveSheet(context.Background(),
		sheet("1A", model.DateKey("2026-03-02"), model.AttendanceRecord{StudentID: "s1", Status: "Bolos"}))
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEligibilityDefaultOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// No attendance recorded for the session: everyone is eligible.
	for _, id := range []string{"s1", "s2", "s3"} {
		eligible, err := env.attendance.IsEligible(ctx, id, "1A", model.DateKey("2026-03-02"))
		require.NoError(t, err)
		require.True(t, eligible)
	}
}

func TestEligibilityRequiresPresentStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	key := model.TopicKey("Aljabar", 1)

	_, err := env.attendance.SaveSheet(ctx, sheet("1A", key,
		rec("s1", model.StatusPresent),
		rec("s2", model.StatusSick),
		rec("s3", model.StatusExcused),
		rec("s4", model.StatusAbsent),
	))
	require.NoError(t, err)

	cases := map[string]bool{
		"s1": true,
		"s2": false,
		"s3": false,
		"s4": false,
		"s5": false, // not on the sheet at all
	}
	for id, want := range cases {
		eligible, err := env.attendance.IsEligible(ctx, id, "1A", key)
		require.NoError(t, err)
		require.Equal(t, want, eligible, "student %s", id)
	}

	// The same students stay eligible for a session without a sheet.
	eligible, err := env.attendance.IsEligible(ctx, "s2", "1A", model.TopicKey("Aljabar", 2))
	require.NoError(t, err)
	require.True(t, eligible)
}

func TestTallyCountsOnlyRequestedMonth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedRoster(t,
		model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"},
		model.Student{ID: "s2", Name: "Budi", NIS: "1002", ClassCode: "1A"},
	)

	save := func(key model.SessionKey, records ...model.AttendanceRecord) {
		_, err := env.attendance.SaveSheet(ctx, sheet("1A", key, records...))
		require.NoError(t, err)
	}
	save(model.DateKey("2026-03-02"), rec("s1", model.StatusPresent), rec("s2", model.StatusSick))
	save(model.DateKey("2026-03-09"), rec("s1", model.StatusPresent), rec("s2", model.StatusPresent))
	save(model.DateKey("2026-04-06"), rec("s1", model.StatusAbsent), rec("s2", model.StatusPresent))
	// Topic-keyed sessions carry no calendar date and never enter a tally.
	save(model.TopicKey("Aljabar", 1), rec("s1", model.StatusPresent), rec("s2", model.StatusPresent))

	rows, err := env.attendance.Tally(ctx, "1A", 3, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Andi", rows[0].StudentName)
	require.Equal(t, 2, rows[0].Present)
	require.Equal(t, 0, rows[0].Absent)
	require.Equal(t, 2, rows[0].Total)

	require.Equal(t, "Budi", rows[1].StudentName)
	require.Equal(t, 1, rows[1].Present)
	require.Equal(t, 1, rows[1].Sick)
	require.Equal(t, 2, rows[1].Total)
}

func TestTallyValidatesMonth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.Tally(context.Background(), "1A", 0, 2026)
	require.ErrorIs(t, err, ErrInvalidMonth)
	_, err = env.attendance.Tally(context.Background(), "1A", 13, 2026)
	require.ErrorIs(t, err, ErrInvalidMonth)
}
