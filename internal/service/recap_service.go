package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
)

var ErrInvalidRecapMode = errors.New("recap mode must be date or topic")

// RecapService derives per-group and final averages from the raw grade
// entries. Recaps are recomputed on every request and never persisted, so
// raw entries and summaries cannot drift apart.
type RecapService struct {
	gradeRepo   *repository.GradeRepository
	studentRepo *repository.StudentRepository
	log         zerolog.Logger
}

// NewRecapService creates a new RecapService.
func NewRecapService(gradeRepo *repository.GradeRepository, studentRepo *repository.StudentRepository, log zerolog.Logger) *RecapService {
	return &RecapService{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "recap_service").Logger(),
	}
}

// Recap folds one class's grade entries for a subject and semester into one
// row per roster student.
//
// Per group (topic or date): the daily average is the mean of all Harian
// scores; UTS and UAS contribute their single score each. The group average
// is the mean of whichever components exist — an absent component is
// excluded from both numerator and count, never treated as zero. The final
// score is the mean of group averages over groups with at least one
// component. All means are rounded to 2 decimal places.
//
// Group labels come back sorted ascending; YYYY-MM-DD dates sort
// lexicographically into chronological order.
func (s *RecapService) Recap(ctx context.Context, className, subject, semester string, mode model.RecapMode) (*model.RecapResult, error) {
	if !mode.Valid() {
		return nil, ErrInvalidRecapMode
	}

	roster, err := s.studentRepo.ListByClass(ctx, className)
	if err != nil {
		return nil, err
	}
	entries, err := s.gradeRepo.ListByClassSubject(ctx, className, subject, semester)
	if err != nil {
		return nil, err
	}

	// Keep only entries of the requested keying scheme.
	matched := entries[:0:0]
	for _, e := range entries {
		topicKeyed := e.Topic != ""
		if topicKeyed == (mode == model.RecapByTopic) {
			matched = append(matched, e)
		}
	}

	groups := groupLabels(matched)
	rows := make([]model.RecapRow, 0, len(roster))
	for _, st := range roster {
		rows = append(rows, buildRecapRow(st, matched, groups))
	}

	return &model.RecapResult{Groups: groups, Rows: rows}, nil
}

// groupLabels returns the deduplicated group labels in ascending order.
func groupLabels(entries []model.GradeEntry) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, e := range entries {
		label := e.GroupLabel()
		if label != "" && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

func buildRecapRow(st model.Student, entries []model.GradeEntry, groups []string) model.RecapRow {
	row := model.RecapRow{
		StudentID:   st.ID,
		StudentName: st.Name,
		NIS:         st.NIS,
		Cells:       make(map[string]model.RecapCell, len(groups)),
	}

	var finalSum float64
	for _, group := range groups {
		cell := buildRecapCell(st.ID, group, entries)
		row.Cells[group] = cell
		if cell.HasAny() {
			finalSum += cell.GroupAverage
			row.PresentGroups++
		}
	}
	if row.PresentGroups > 0 {
		row.FinalScore = round2(finalSum / float64(row.PresentGroups))
	}
	return row
}

func buildRecapCell(studentID, group string, entries []model.GradeEntry) model.RecapCell {
	var cell model.RecapCell
	var dailySum float64
	var dailyCount int

	for _, e := range entries {
		if e.StudentID != studentID || e.GroupLabel() != group {
			continue
		}
		switch e.Kind {
		case model.KindDaily:
			dailySum += e.Score
			dailyCount++
			cell.HasDaily = true
		case model.KindMidSemester:
			cell.MidSemester = e.Score
			cell.HasMid = true
		case model.KindEndSemester:
			cell.EndSemester = e.Score
			cell.HasEnd = true
		}
	}

	if cell.HasDaily {
		cell.DailyAverage = round2(dailySum / float64(dailyCount))
	}

	var sum float64
	var count int
	if cell.HasDaily {
		sum += cell.DailyAverage
		count++
	}
	if cell.HasMid {
		sum += cell.MidSemester
		count++
	}
	if cell.HasEnd {
		sum += cell.EndSemester
		count++
	}
	if count > 0 {
		cell.GroupAverage = round2(sum / float64(count))
	}
	return cell
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
