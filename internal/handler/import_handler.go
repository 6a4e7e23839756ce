package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/validator"
)

// ImportHandler receives bulk-import payloads from the import collaborator.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportStudentsRequest is the payload for a roster import.
type ImportStudentsRequest struct {
	Students []model.ImportStudentRequest `json:"students" binding:"required,min=1,dive"`
}

// ImportStudents godoc
// POST /api/v1/students/import
// Merges roster rows by ID: replace when the ID exists, append otherwise.
func (h *ImportHandler) ImportStudents(c *gin.Context) {
	var req ImportStudentsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	merged, err := h.importService.ImportStudents(c.Request.Context(), req.Students)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"total": len(merged), "students": merged})
}

// ImportCollectionsRequest carries optional bulk payloads for the entry
// collections. Each present array is merged by ID independently.
type ImportCollectionsRequest struct {
	Grades     []model.GradeEntry      `json:"grades"`
	Attendance []model.AttendanceEntry `json:"attendance"`
}

// ImportCollections godoc
// POST /api/v1/import
// Merges grade and attendance entries by ID.
func (h *ImportHandler) ImportCollections(c *gin.Context) {
	var req ImportCollectionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	totals := gin.H{}
	if len(req.Grades) > 0 {
		total, err := h.importService.ImportGrades(c.Request.Context(), req.Grades)
		if err != nil {
			failFromError(c, err)
			return
		}
		totals["grades"] = total
	}
	if len(req.Attendance) > 0 {
		total, err := h.importService.ImportAttendance(c.Request.Context(), req.Attendance)
		if err != nil {
			failFromError(c, err)
			return
		}
		totals["attendance"] = total
	}

	response.Success(c, http.StatusOK, totals)
}
