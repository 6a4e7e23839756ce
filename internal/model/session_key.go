package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for date-keyed sessions.
const DateLayout = "2006-01-02"

var (
	ErrSessionKeyEmpty     = errors.New("session key has neither a date nor a topic")
	ErrSessionKeyAmbiguous = errors.New("session key has both a date and a topic")
	ErrOccurrenceRequired  = errors.New("topic-keyed session requires an occurrence number")
	ErrInvalidDate         = errors.New("session date is not a valid calendar date")
)

// SessionKey identifies an attendance/grading session. Exactly one keying
// scheme applies: a calendar date (homeroom teachers) or a topic plus
// occurrence number (subject-specialist teachers). Use DateKey or TopicKey
// to construct values that satisfy Validate.
type SessionKey struct {
	Date       string `json:"date,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Occurrence int    `json:"occurrence,omitempty"`
}

// DateKey returns a date-keyed session for the given YYYY-MM-DD date.
func DateKey(date string) SessionKey {
	return SessionKey{Date: date}
}

// TopicKey returns a topic-keyed session.
func TopicKey(topic string, occurrence int) SessionKey {
	return SessionKey{Topic: topic, Occurrence: occurrence}
}

// IsDateKeyed reports whether the session is identified by calendar date.
func (k SessionKey) IsDateKeyed() bool {
	return k.Date != ""
}

// IsTopicKeyed reports whether the session is identified by topic and
// occurrence number.
func (k SessionKey) IsTopicKeyed() bool {
	return k.Topic != ""
}

// Validate checks that exactly one keying scheme is present and well-formed.
func (k SessionKey) Validate() error {
	switch {
	case k.Date == "" && k.Topic == "":
		return ErrSessionKeyEmpty
	case k.Date != "" && k.Topic != "":
		return ErrSessionKeyAmbiguous
	case k.IsTopicKeyed():
		if k.Occurrence < 1 {
			return ErrOccurrenceRequired
		}
		return nil
	default:
		if _, err := time.Parse(DateLayout, k.Date); err != nil {
			return ErrInvalidDate
		}
		return nil
	}
}

// String renders a stable identity usable as a map key. Two SessionKeys
// identify the same session iff their String values are equal.
func (k SessionKey) String() string {
	if k.IsTopicKeyed() {
		return fmt.Sprintf("topic:%s#%d", k.Topic, k.Occurrence)
	}
	return "date:" + k.Date
}
