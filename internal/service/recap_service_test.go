package service

import (
	"context"
	"testing"

	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func topicGrade(studentID, topic string, occurrence int, kind model.AssessmentKind, score float64) model.GradeEntry {
	return model.GradeEntry{
		StudentID:   studentID,
		StudentName: "Siswa " + studentID,
		ClassName:   "1A",
		Subject:     "Matematika",
		Kind:        kind,
		Score:       score,
		SessionDate: "2026-03-02",
		Semester:    "1",
		Topic:       topic,
		Occurrence:  occurrence,
	}
}

func (e *testEnv) mustSave(t *testing.T, entry model.GradeEntry) {
	t.Helper()
	_, skipped, err := e.grades.Save(context.Background(), entry)
	require.NoError(t, err)
	require.False(t, skipped)
}

func TestRecapGroupAverageIgnoresAbsentComponents(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoster(t, model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"})

	// Only a daily score exists: the group average is that score, not a
	// third of it.
	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindDaily, 80))

	result, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", model.RecapByTopic)
	require.NoError(t, err)
	require.Equal(t, []string{"Aljabar"}, result.Groups)
	require.Len(t, result.Rows, 1)

	cell := result.Rows[0].Cells["Aljabar"]
	require.True(t, cell.HasDaily)
	require.False(t, cell.HasMid)
	require.False(t, cell.HasEnd)
	require.Equal(t, 80.0, cell.DailyAverage)
	require.Equal(t, 80.0, cell.GroupAverage)
	require.Equal(t, 80.0, result.Rows[0].FinalScore)
}

func TestRecapFinalScoreAcrossGroups(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoster(t, model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"})

	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindDaily, 80))
	env.mustSave(t, topicGrade("s1", "Geometri", 1, model.KindDaily, 90))

	result, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", model.RecapByTopic)
	require.NoError(t, err)
	require.Equal(t, []string{"Aljabar", "Geometri"}, result.Groups)
	require.Equal(t, 85.0, result.Rows[0].FinalScore)
	require.Equal(t, 2, result.Rows[0].PresentGroups)
}

func TestRecapRounding(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoster(t, model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"})

	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindDaily, 80))
	env.mustSave(t, topicGrade("s1", "Aljabar", 2, model.KindDaily, 85))
	env.mustSave(t, topicGrade("s1", "Aljabar", 3, model.KindDaily, 92))
	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindMidSemester, 90))
	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindEndSemester, 80))

	result, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", model.RecapByTopic)
	require.NoError(t, err)

	cell := result.Rows[0].Cells["Aljabar"]
	require.Equal(t, 85.67, cell.DailyAverage, "(80+85+92)/3 rounded to 2 decimals")
	require.Equal(t, 90.0, cell.MidSemester)
	require.Equal(t, 80.0, cell.EndSemester)
	require.Equal(t, 85.22, cell.GroupAverage, "(85.67+90+80)/3 rounded to 2 decimals")
}

func TestRecapNoDataDistinctFromZero(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoster(t,
		model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"},
		model.Student{ID: "s2", Name: "Budi", NIS: "1002", ClassCode: "1A"},
	)

	// Budi scored a literal zero; Andi has no entries at all.
	env.mustSave(t, topicGrade("s2", "Aljabar", 1, model.KindDaily, 0))

	result, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", model.RecapByTopic)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	andi, budi := result.Rows[0], result.Rows[1]
	require.Equal(t, "Andi", andi.StudentName)

	require.Equal(t, 0.0, andi.FinalScore)
	require.Equal(t, 0, andi.PresentGroups)
	require.False(t, andi.Cells["Aljabar"].HasAny())

	require.Equal(t, 0.0, budi.FinalScore)
	require.Equal(t, 1, budi.PresentGroups, "a recorded zero is a present component")
	require.True(t, budi.Cells["Aljabar"].HasAny())
}

func TestRecapDateModeGroupsChronologically(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoster(t, model.Student{ID: "s1", Name: "Andi", NIS: "1001", ClassCode: "1A"})

	env.mustSave(t, dailyGrade("s1", "2026-03-09", 85))
	env.mustSave(t, dailyGrade("s1", "2026-03-02", 75))
	// A topic-keyed entry must not leak into a date-grouped recap.
	env.mustSave(t, topicGrade("s1", "Aljabar", 1, model.KindDaily, 100))

	result, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", model.RecapByDate)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-03-02", "2026-03-09"}, result.Groups)
	require.Equal(t, 80.0, result.Rows[0].FinalScore)
}

func TestRecapRejectsUnknownMode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.recap.Recap(context.Background(), "1A", "Matematika", "1", "weekly")
	require.ErrorIs(t, err, ErrInvalidRecapMode)
}
