package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/repository"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
)

// SystemHandler reports runtime status for operators.
type SystemHandler struct {
	cfg            *config.Config
	studentRepo    *repository.StudentRepository
	attendanceRepo *repository.AttendanceRepository
	gradeRepo      *repository.GradeRepository
	backupService  *service.BackupService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(cfg *config.Config, studentRepo *repository.StudentRepository, attendanceRepo *repository.AttendanceRepository, gradeRepo *repository.GradeRepository, backupService *service.BackupService) *SystemHandler {
	return &SystemHandler{
		cfg:            cfg,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		gradeRepo:      gradeRepo,
		backupService:  backupService,
	}
}

// Status godoc
// GET /api/v1/system/status
// Reports the store backend, collection sizes, and current store revision.
func (h *SystemHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	students, err := h.studentRepo.Load(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}
	attendance, err := h.attendanceRepo.Load(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}
	grades, err := h.gradeRepo.Load(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}
	revision, err := h.backupService.Revision(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"store_backend":      h.cfg.StoreBackend,
		"students":           len(students),
		"attendance_entries": len(attendance),
		"grade_entries":      len(grades),
		"revision":           revision,
	})
}
