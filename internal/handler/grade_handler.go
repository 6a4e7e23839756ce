package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/validator"
)

// GradeHandler records scores, single and per-roster batch.
type GradeHandler struct {
	gradeService *service.GradeService
	classService *service.ClassService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService, classService *service.ClassService) *GradeHandler {
	return &GradeHandler{
		gradeService: gradeService,
		classService: classService,
	}
}

// SaveGradeRequest is the payload for recording a single score.
type SaveGradeRequest struct {
	StudentID   string               `json:"student_id" binding:"required"`
	StudentName string               `json:"student_name" binding:"required,min=1,max=100"`
	Class       string               `json:"class" binding:"required,min=1,max=20"`
	Subject     string               `json:"subject" binding:"required,min=1,max=100"`
	Kind        model.AssessmentKind `json:"kind" binding:"required,oneof=Harian UTS UAS"`
	Score       float64              `json:"score" binding:"min=0,max=100"`
	SessionDate string               `json:"session_date" binding:"omitempty,datetime=2006-01-02"`
	Semester    string               `json:"semester" binding:"required,min=1,max=10"`
	Topic       string               `json:"topic" binding:"omitempty,min=1,max=100"`
	Occurrence  int                  `json:"occurrence" binding:"omitempty,min=1"`
}

// SaveGrade godoc
// POST /api/v1/grades
// Upserts one score under its natural key. A student the eligibility gate
// rejects is skipped silently and reported as skipped=true.
func (h *GradeHandler) SaveGrade(c *gin.Context) {
	var req SaveGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	className, err := h.classService.Resolve(c.Request.Context(), req.Class)
	if err != nil {
		failFromError(c, err)
		return
	}

	entry, skipped, err := h.gradeService.Save(c.Request.Context(), model.GradeEntry{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		ClassName:   className,
		Subject:     req.Subject,
		Kind:        req.Kind,
		Score:       req.Score,
		SessionDate: req.SessionDate,
		Semester:    req.Semester,
		Topic:       req.Topic,
		Occurrence:  req.Occurrence,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry, "skipped": skipped})
}

// ScorePayload is one pending score in a batch save.
type ScorePayload struct {
	StudentID   string  `json:"student_id" binding:"required"`
	StudentName string  `json:"student_name" binding:"required,min=1,max=100"`
	Score       float64 `json:"score" binding:"min=0,max=100"`
}

// SaveGradeBatchRequest records one assessment event for a whole roster.
type SaveGradeBatchRequest struct {
	Class       string               `json:"class" binding:"required,min=1,max=20"`
	Subject     string               `json:"subject" binding:"required,min=1,max=100"`
	Semester    string               `json:"semester" binding:"required,min=1,max=10"`
	Kind        model.AssessmentKind `json:"kind" binding:"required,oneof=Harian UTS UAS"`
	Session     SessionKeyPayload    `json:"session" binding:"required"`
	SessionDate string               `json:"session_date" binding:"omitempty,datetime=2006-01-02"`
	Scores      []ScorePayload       `json:"scores" binding:"required,min=1,dive"`
}

// SaveGradeBatch godoc
// POST /api/v1/grades/batch
// Saves a roster's pending scores for one session; ineligible students are
// skipped and their IDs returned.
func (h *GradeHandler) SaveGradeBatch(c *gin.Context) {
	var req SaveGradeBatchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	className, err := h.classService.Resolve(c.Request.Context(), req.Class)
	if err != nil {
		failFromError(c, err)
		return
	}

	inputs := make([]service.ScoreInput, 0, len(req.Scores))
	for _, s := range req.Scores {
		inputs = append(inputs, service.ScoreInput{
			StudentID:   s.StudentID,
			StudentName: s.StudentName,
			Score:       s.Score,
		})
	}

	result, err := h.gradeService.SaveBatch(c.Request.Context(),
		className, req.Subject, req.Semester, req.Kind,
		req.Session.ToModel(), req.SessionDate, inputs)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// ListGrades godoc
// GET /api/v1/grades?class=...&subject=...&semester=...
// Lists raw grade entries for a class, subject, and semester.
func (h *GradeHandler) ListGrades(c *gin.Context) {
	className, err := h.classService.Resolve(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return
	}

	entries, err := h.gradeService.ListByClassSubject(c.Request.Context(),
		className, c.Query("subject"), c.Query("semester"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": className, "entries": entries})
}
