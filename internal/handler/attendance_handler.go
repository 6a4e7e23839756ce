package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/export"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/validator"
)

// AttendanceHandler exposes attendance sheets and the monthly tally.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	classService      *service.ClassService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService, classService *service.ClassService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		classService:      classService,
	}
}

// AttendanceRecordPayload is one student's row on the sheet being saved.
type AttendanceRecordPayload struct {
	StudentID   string       `json:"student_id" binding:"required"`
	StudentName string       `json:"student_name" binding:"required,min=1,max=100"`
	Status      model.Status `json:"status" binding:"required,oneof=Hadir Sakit Izin Alpa"`
	Note        string       `json:"note" binding:"omitempty,max=255"`
}

// SaveAttendanceRequest is the payload for saving a full attendance sheet.
type SaveAttendanceRequest struct {
	Class   string                    `json:"class" binding:"required,min=1,max=20"`
	Session SessionKeyPayload         `json:"session" binding:"required"`
	Records []AttendanceRecordPayload `json:"records" binding:"required,dive"`
}

// SaveSheet godoc
// PUT /api/v1/attendance
// Upserts the sheet for one (class, session) key, replacing records
// wholesale.
func (h *AttendanceHandler) SaveSheet(c *gin.Context) {
	var req SaveAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	className, err := h.classService.Resolve(c.Request.Context(), req.Class)
	if err != nil {
		failFromError(c, err)
		return
	}

	records := make([]model.AttendanceRecord, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, model.AttendanceRecord{
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			Status:      r.Status,
			Note:        r.Note,
		})
	}

	entry, err := h.attendanceService.SaveSheet(c.Request.Context(), model.AttendanceEntry{
		ClassName: className,
		Session:   req.Session.ToModel(),
		Records:   records,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// GetSheet godoc
// GET /api/v1/attendance?class=...&date=... (or &topic=...&occurrence=...)
// Returns the sheet for the exact session key. An absent sheet is a normal
// outcome: found=false with a null entry, not an error.
func (h *AttendanceHandler) GetSheet(c *gin.Context) {
	className, err := h.classService.Resolve(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return
	}

	entry, found, err := h.attendanceService.GetSheet(c.Request.Context(), className, sessionKeyFromQuery(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"found": found, "entry": entry})
}

// ListSheets godoc
// GET /api/v1/attendance/entries?class=...
// Lists every attendance entry recorded for a class.
func (h *AttendanceHandler) ListSheets(c *gin.Context) {
	className, err := h.classService.Resolve(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return
	}

	entries, err := h.attendanceService.ListByClass(c.Request.Context(), className)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": className, "entries": entries})
}

// Tally godoc
// GET /api/v1/attendance/tally?class=...&month=3&year=2026
// Returns per-student status counts over one calendar month.
func (h *AttendanceHandler) Tally(c *gin.Context) {
	className, month, year, rows, ok := h.tallyFromQuery(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"class": className,
		"month": month,
		"year":  year,
		"rows":  rows,
	})
}

// TallyExport godoc
// GET /api/v1/attendance/tally/export?class=...&month=3&year=2026
// Streams the monthly tally as a spreadsheet download.
func (h *AttendanceHandler) TallyExport(c *gin.Context) {
	className, month, year, rows, ok := h.tallyFromQuery(c)
	if !ok {
		return
	}

	f, err := export.TallyXLSX(rows, month, year)
	if err != nil {
		failFromError(c, err)
		return
	}

	filename := fmt.Sprintf("kehadiran_%s_%04d-%02d.xlsx", className, year, month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *AttendanceHandler) tallyFromQuery(c *gin.Context) (string, int, int, []model.TallyRow, bool) {
	className, err := h.classService.Resolve(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return "", 0, 0, nil, false
	}

	month, monthOK := atoiQuery(c, "month")
	year, yearOK := atoiQuery(c, "year")
	if !monthOK || !yearOK {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidMonth)
		return "", 0, 0, nil, false
	}

	rows, err := h.attendanceService.Tally(c.Request.Context(), className, month, year)
	if err != nil {
		failFromError(c, err)
		return "", 0, 0, nil, false
	}
	return className, month, year, rows, true
}
