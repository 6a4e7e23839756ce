package model

// Gender represents the student's gender.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// Student represents one roster member. The ID is generated on first import
// and never changes; ClassCode determines roster membership for attendance
// and grading.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NIS       string `json:"nis"`
	ClassCode string `json:"class_code"`
	Gender    Gender `json:"gender"`
}

// ImportStudentRequest is one roster row supplied by the bulk import
// collaborator. An empty ID means append-with-new-ID; a known ID replaces
// the existing record.
type ImportStudentRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" binding:"required,min=2,max=100"`
	NIS       string `json:"nis" binding:"required,min=1,max=20"`
	ClassCode string `json:"class_code" binding:"required,min=1,max=10"`
	Gender    Gender `json:"gender" binding:"required,oneof=Laki-laki Perempuan"`
}
