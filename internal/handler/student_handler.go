package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
)

// StudentHandler exposes the class roster.
type StudentHandler struct {
	classService *service.ClassService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(classService *service.ClassService) *StudentHandler {
	return &StudentHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists the distinct class codes present in the roster.
func (h *StudentHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// ResolveClass godoc
// GET /api/v1/classes/resolve?token=...
// Normalizes a loose class token into a canonical class code.
func (h *StudentHandler) ResolveClass(c *gin.Context) {
	code, err := h.classService.Resolve(c.Request.Context(), c.Query("token"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": code})
}

// ListStudents godoc
// GET /api/v1/students?class=...&page=1&per_page=50
// Lists one class's roster ordered by name. The class query token is
// resolved before lookup; the resolved code is echoed back.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	code, roster, err := h.classService.Roster(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	total := len(roster)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	response.SuccessWithPagination(c, http.StatusOK,
		gin.H{"class": code, "students": roster[start:end]},
		&response.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: total,
			TotalPages: (total + perPage - 1) / perPage,
		})
}
