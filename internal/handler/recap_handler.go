package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/export"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
)

// RecapHandler serves derived grade recaps. Every request recomputes from
// the raw entries; nothing here is cached or persisted.
type RecapHandler struct {
	recapService *service.RecapService
	classService *service.ClassService
}

// NewRecapHandler creates a new RecapHandler.
func NewRecapHandler(recapService *service.RecapService, classService *service.ClassService) *RecapHandler {
	return &RecapHandler{
		recapService: recapService,
		classService: classService,
	}
}

// Recap godoc
// GET /api/v1/recap?class=...&subject=...&semester=...&mode=date|topic
// Returns one row per roster student plus the ordered group labels the
// consumer must preserve.
func (h *RecapHandler) Recap(c *gin.Context) {
	className, result, ok := h.recapFromQuery(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": className, "recap": result})
}

// RecapExport godoc
// GET /api/v1/recap/export?class=...&subject=...&semester=...&mode=date|topic
// Streams the recap as a spreadsheet download.
func (h *RecapHandler) RecapExport(c *gin.Context) {
	className, result, ok := h.recapFromQuery(c)
	if !ok {
		return
	}

	f, err := export.RecapXLSX(result)
	if err != nil {
		failFromError(c, err)
		return
	}

	filename := fmt.Sprintf("rekap_%s_%s.xlsx", className, c.Query("subject"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *RecapHandler) recapFromQuery(c *gin.Context) (string, *model.RecapResult, bool) {
	className, err := h.classService.Resolve(c.Request.Context(), c.Query("class"))
	if err != nil {
		failFromError(c, err)
		return "", nil, false
	}

	mode := model.RecapMode(c.DefaultQuery("mode", string(model.RecapByDate)))
	result, err := h.recapService.Recap(c.Request.Context(),
		className, c.Query("subject"), c.Query("semester"), mode)
	if err != nil {
		failFromError(c, err)
		return "", nil, false
	}
	return className, result, true
}
