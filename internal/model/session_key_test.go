package model

import (
	"errors"
	"testing"
)

func TestSessionKeyValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     SessionKey
		wantErr error
	}{
		{name: "valid date key", key: DateKey("2026-03-02")},
		{name: "valid topic key", key: TopicKey("Aljabar", 2)},
		{name: "empty", key: SessionKey{}, wantErr: ErrSessionKeyEmpty},
		{name: "both schemes", key: SessionKey{Date: "2026-03-02", Topic: "Aljabar", Occurrence: 1}, wantErr: ErrSessionKeyAmbiguous},
		{name: "topic without occurrence", key: SessionKey{Topic: "Aljabar"}, wantErr: ErrOccurrenceRequired},
		{name: "malformed date", key: DateKey("02-03-2026"), wantErr: ErrInvalidDate},
		{name: "impossible date", key: DateKey("2026-13-40"), wantErr: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.key.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionKeyString(t *testing.T) {
	if got := DateKey("2026-03-02").String(); got != "date:2026-03-02" {
		t.Errorf("date key String() = %q", got)
	}
	if got := TopicKey("Aljabar", 2).String(); got != "topic:Aljabar#2" {
		t.Errorf("topic key String() = %q", got)
	}
	// Distinct occurrences of the same topic are distinct sessions.
	if TopicKey("Aljabar", 1).String() == TopicKey("Aljabar", 2).String() {
		t.Error("occurrences must not collide")
	}
}

func TestGradeEntryNaturalKey(t *testing.T) {
	base := GradeEntry{
		StudentID: "s1", Subject: "Matematika", Kind: KindDaily,
		Semester: "1", SessionDate: "2026-03-02",
	}

	same := base
	same.Score = 95
	if base.NaturalKey() != same.NaturalKey() {
		t.Error("score must not affect the natural key")
	}

	otherDate := base
	otherDate.SessionDate = "2026-03-09"
	if base.NaturalKey() == otherDate.NaturalKey() {
		t.Error("date-keyed daily entries on distinct dates must not collide")
	}

	mid := base
	mid.Kind = KindMidSemester
	midLater := mid
	midLater.SessionDate = "2026-04-01"
	if mid.NaturalKey() != midLater.NaturalKey() {
		t.Error("date-keyed UTS is unique per semester regardless of date")
	}

	topic := base
	topic.Topic = "Aljabar"
	topic.Occurrence = 1
	topicNext := topic
	topicNext.Occurrence = 2
	if topic.NaturalKey() == topicNext.NaturalKey() {
		t.Error("topic occurrences must not collide")
	}
}
