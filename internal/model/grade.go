package model

import (
	"strconv"
	"strings"
)

// AssessmentKind enumerates the three grade categories folded into a
// composite average.
type AssessmentKind string

const (
	KindDaily       AssessmentKind = "Harian"
	KindMidSemester AssessmentKind = "UTS"
	KindEndSemester AssessmentKind = "UAS"
)

// Valid reports whether k is one of the three recognized kinds.
func (k AssessmentKind) Valid() bool {
	switch k {
	case KindDaily, KindMidSemester, KindEndSemester:
		return true
	}
	return false
}

// GradeEntry is one recorded score. Topic and Occurrence are set only for
// topic-keyed entries; date-keyed entries leave both zero.
type GradeEntry struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"student_id"`
	StudentName string         `json:"student_name"`
	ClassName   string         `json:"class_name"`
	Subject     string         `json:"subject"`
	Kind        AssessmentKind `json:"kind"`
	Score       float64        `json:"score"`
	SessionDate string         `json:"session_date"`
	Semester    string         `json:"semester"`
	Topic       string         `json:"topic,omitempty"`
	Occurrence  int            `json:"occurrence,omitempty"`
}

// NaturalKey returns the identity under which entries are upserted: at most
// one entry exists per natural key, and re-saving the same key replaces the
// prior entry.
//
// Topic-keyed entries are unique per (student, subject, kind, semester,
// topic, occurrence). Date-keyed Daily entries are additionally unique per
// session date, so each teaching day holds its own daily score; date-keyed
// UTS/UAS are unique per (student, subject, kind, semester) — re-saving one
// moves it to the newly supplied date rather than duplicating it.
func (e GradeEntry) NaturalKey() string {
	parts := []string{e.StudentID, e.Subject, string(e.Kind), e.Semester}
	if e.Topic != "" {
		parts = append(parts, "topic", e.Topic, strconv.Itoa(e.Occurrence))
	} else if e.Kind == KindDaily {
		parts = append(parts, "date", e.SessionDate)
	}
	return strings.Join(parts, "|")
}

// GroupLabel returns the recap group the entry belongs to: its topic in
// topic-keyed mode, its session date otherwise.
func (e GradeEntry) GroupLabel() string {
	if e.Topic != "" {
		return e.Topic
	}
	return e.SessionDate
}
