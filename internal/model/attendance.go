package model

import "time"

// Status represents a student's attendance status for one session.
type Status string

const (
	StatusPresent Status = "Hadir"
	StatusSick    Status = "Sakit"
	StatusExcused Status = "Izin"
	StatusAbsent  Status = "Alpa"
)

// Valid reports whether s is one of the four recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusSick, StatusExcused, StatusAbsent:
		return true
	}
	return false
}

// AttendanceRecord is one student's status within a session entry.
type AttendanceRecord struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      Status `json:"status"`
	Note        string `json:"note,omitempty"`
}

// AttendanceEntry holds the full attendance sheet of one session. At most
// one entry exists per (class, session key); saving replaces Records
// wholesale, never patches them.
type AttendanceEntry struct {
	ID        string             `json:"id"`
	ClassName string             `json:"class_name"`
	Session   SessionKey         `json:"session"`
	Records   []AttendanceRecord `json:"records"`
	SavedAt   time.Time          `json:"saved_at"`
}

// TallyRow is one student's per-status counts over a calendar month.
// Derived on demand, never persisted.
type TallyRow struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	NIS         string `json:"nis"`
	Present     int    `json:"present"`
	Sick        int    `json:"sick"`
	Excused     int    `json:"excused"`
	Absent      int    `json:"absent"`
	Total       int    `json:"total"`
}
