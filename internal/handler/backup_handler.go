package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/validator"
)

// BackupHandler exposes whole-store snapshots for the backup collaborator.
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Snapshot godoc
// GET /api/v1/backup/snapshot
// Returns every store key with its raw string value.
func (h *BackupHandler) Snapshot(c *gin.Context) {
	snap, err := h.backupService.Snapshot(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshot": snap})
}

// RestoreRequest is a snapshot to write back. Values are opaque: they are
// stored verbatim whether or not they parse as JSON.
type RestoreRequest struct {
	Snapshot map[string]string `json:"snapshot" binding:"required"`
}

// Restore godoc
// POST /api/v1/backup/restore
// Writes every snapshot key back verbatim and bumps the revision key so
// hosts reload their state.
func (h *BackupHandler) Restore(c *gin.Context) {
	var req RestoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), req.Snapshot); err != nil {
		failFromError(c, err)
		return
	}

	revision, err := h.backupService.Revision(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"restored": len(req.Snapshot), "revision": revision})
}

// Enqueue godoc
// POST /api/v1/backup/enqueue
// Asks the background worker to write a snapshot file.
func (h *BackupHandler) Enqueue(c *gin.Context) {
	if err := h.backupService.EnqueueSnapshot(c.Request.Context()); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"enqueued": true})
}
