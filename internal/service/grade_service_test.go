package service

import (
	"context"
	"testing"

	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func dailyGrade(studentID, date string, score float64) model.GradeEntry {
	return model.GradeEntry{
		StudentID:   studentID,
		StudentName: "Siswa " + studentID,
		ClassName:   "1A",
		Subject:     "Matematika",
		Kind:        model.KindDaily,
		Score:       score,
		SessionDate: date,
		Semester:    "1",
	}
}

func TestSaveGradeIdempotentUpsert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, skipped, err := env.grades.Save(ctx, dailyGrade("s1", "2026-03-02", 75))
	require.NoError(t, err)
	require.False(t, skipped)
	require.NotEmpty(t, first.ID)

	second, skipped, err := env.grades.Save(ctx, dailyGrade("s1", "2026-03-02", 90))
	require.NoError(t, err)
	require.False(t, skipped)
	require.Equal(t, first.ID, second.ID, "replacement keeps the original ID")

	entries, err := env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 90.0, entries[0].Score)

	// A different natural key appends a new entry with a fresh ID.
	third, _, err := env.grades.Save(ctx, dailyGrade("s1", "2026-03-09", 80))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)

	entries, err = env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestSaveGradeValidatesKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*model.GradeEntry)
		wantErr error
	}{
		{
			name:    "occurrence without topic",
			mutate:  func(e *model.GradeEntry) { e.Occurrence = 1 },
			wantErr: ErrTopicRequired,
		},
		{
			name:    "topic without occurrence",
			mutate:  func(e *model.GradeEntry) { e.Topic = "Aljabar" },
			wantErr: model.ErrOccurrenceRequired,
		},
		{
			name:    "missing date in date mode",
			mutate:  func(e *model.GradeEntry) { e.SessionDate = "" },
			wantErr: ErrDateRequired,
		},
		{
			name:    "score above range",
			mutate:  func(e *model.GradeEntry) { e.Score = 101 },
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "unknown kind",
			mutate:  func(e *model.GradeEntry) { e.Kind = "Remedial" },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "missing student",
			mutate:  func(e *model.GradeEntry) { e.StudentID = "" },
			wantErr: ErrStudentRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := dailyGrade("s1", "2026-03-02", 80)
			tt.mutate(&entry)
			_, _, err := env.grades.Save(ctx, entry)
			require.ErrorIs(t, err, tt.wantErr)

			// A validation failure must leave no partial write behind.
			entries, loadErr := env.gradeRepo.Load(ctx)
			require.NoError(t, loadErr)
			require.Empty(t, entries)
		})
	}
}

func TestSaveGradeSkipsIneligibleStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	key := model.DateKey("2026-03-02")

	_, err := env.attendance.SaveSheet(ctx, sheet("1A", key, rec("s1", model.StatusSick)))
	require.NoError(t, err)

	entry, skipped, err := env.grades.Save(ctx, dailyGrade("s1", "2026-03-02", 90))
	require.NoError(t, err)
	require.True(t, skipped)
	require.Nil(t, entry)

	entries, err := env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveBatchSkipsIneligibleAndKeepsPriorEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// s2 already has a score under an earlier session; skipping must not
	// erase it.
	_, _, err := env.grades.Save(ctx, dailyGrade("s2", "2026-02-23", 70))
	require.NoError(t, err)

	key := model.DateKey("2026-03-02")
	_, err = env.attendance.SaveSheet(ctx, sheet("1A", key,
		rec("s1", model.StatusPresent),
		rec("s2", model.StatusSick),
	))
	require.NoError(t, err)

	result, err := env.grades.SaveBatch(ctx, "1A", "Matematika", "1", model.KindDaily, key, "",
		[]ScoreInput{
			{StudentID: "s1", StudentName: "Siswa s1", Score: 90},
			{StudentID: "s2", StudentName: "Siswa s2", Score: 80},
		})
	require.NoError(t, err)
	require.Len(t, result.Saved, 1)
	require.Equal(t, "s1", result.Saved[0].StudentID)
	require.Equal(t, []string{"s2"}, result.SkippedIDs)

	entries, err := env.gradeRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2, "s1's new score plus s2's earlier score")
	for _, e := range entries {
		if e.StudentID == "s2" {
			require.Equal(t, "2026-02-23", e.SessionDate)
			require.Equal(t, 70.0, e.Score)
		}
	}
}

func TestSaveBatchTopicModeDefaultsSessionDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.grades.SaveBatch(ctx, "1A", "Matematika", "1",
		model.KindDaily, model.TopicKey("Aljabar", 1), "",
		[]ScoreInput{{StudentID: "s1", StudentName: "Siswa s1", Score: 85}})
	require.NoError(t, err)
	require.Len(t, result.Saved, 1)
	require.NotEmpty(t, result.Saved[0].SessionDate)
	require.Equal(t, "Aljabar", result.Saved[0].Topic)
	require.Equal(t, 1, result.Saved[0].Occurrence)
}

func TestSaveBatchValidatesBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.grades.SaveBatch(ctx, "1A", "Matematika", "1",
		model.KindDaily, model.DateKey("2026-03-02"), "",
		[]ScoreInput{
			{StudentID: "s1", StudentName: "Siswa s1", Score: 90},
			{StudentID: "s2", StudentName: "Siswa s2", Score: 120},
		})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	entries, loadErr := env.gradeRepo.Load(ctx)
	require.NoError(t, loadErr)
	require.Empty(t, entries, "no partial write on a malformed batch")
}
