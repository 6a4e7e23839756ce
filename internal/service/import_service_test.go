package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestImportStudentsMergesByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedRoster(t,
		model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A", Gender: model.GenderMale},
		model.Student{ID: "s2", Name: "Budi", NIS: "1002", ClassCode: "1A", Gender: model.GenderMale},
	)
	svc := NewImportService(env.studentRepo, env.gradeRepo, env.attendanceRepo, zerolog.Nop())

	merged, err := svc.ImportStudents(ctx, []model.ImportStudentRequest{
		// Known ID: replaced in place.
		{ID: "s1", Name: "Andi Pratama", NIS: "1001", ClassCode: "1B", Gender: model.GenderMale},
		// Unknown ID: appended as-is.
		{ID: "s9", Name: "Citra", NIS: "1009", ClassCode: "1A", Gender: model.GenderFemale},
		// No ID: appended under a generated one.
		{Name: "Dewi", NIS: "1010", ClassCode: "1A", Gender: model.GenderFemale},
	})
	require.NoError(t, err)
	require.Len(t, merged, 4)

	require.Equal(t, "Andi Pratama", merged[0].Name)
	require.Equal(t, "1B", merged[0].ClassCode)
	require.Equal(t, "s1", merged[0].ID, "replacement keeps the ID")
	require.Equal(t, "Budi", merged[1].Name, "untouched records survive")
	require.Equal(t, "s9", merged[2].ID)
	require.NotEmpty(t, merged[3].ID, "missing ID is generated")

	// Importing the same rows again must not grow the roster.
	again, err := svc.ImportStudents(ctx, []model.ImportStudentRequest{
		{ID: "s9", Name: "Citra Ayu", NIS: "1009", ClassCode: "1A", Gender: model.GenderFemale},
	})
	require.NoError(t, err)
	require.Len(t, again, 4)
}

func TestImportGradesAndAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(env.studentRepo, env.gradeRepo, env.attendanceRepo, zerolog.Nop())

	total, err := svc.ImportGrades(ctx, []model.GradeEntry{
		dailyGrade("s1", "2026-03-02", 80),
		dailyGrade("s2", "2026-03-02", 75),
	})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	grades, err := env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, grades[0].ID)

	// Re-importing an existing entry by ID replaces it.
	grades[0].Score = 95
	total, err = svc.ImportGrades(ctx, grades[:1])
	require.NoError(t, err)
	require.Equal(t, 2, total)

	reloaded, err := env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 95.0, reloaded[0].Score)

	count, err := svc.ImportAttendance(ctx, []model.AttendanceEntry{
		sheet("1A", model.DateKey("2026-03-02"), rec("s1", model.StatusPresent)),
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
