package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
	"financehub/internal/syncer"
)

// SyncHandler handles data export/import and remote synchronization. The
// syncer is nil when no remote is configured; push and pull then report
// sync as disabled while export/import keep working locally.
type SyncHandler struct {
	exportService services.ExportServicer
	sync          *syncer.Syncer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(exportService services.ExportServicer, sync *syncer.Syncer) *SyncHandler {
	return &SyncHandler{exportService: exportService, sync: sync}
}

// Export handles a full data export
func (h *SyncHandler) Export(c *gin.Context) {
	envelope, err := h.exportService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// Import handles a full data import. Each collection present in the body
// wholesale-replaces its local counterpart.
func (h *SyncHandler) Import(c *gin.Context) {
	var envelope map[string]json.RawMessage
	if err := c.ShouldBindJSON(&envelope); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidEnvelope, err.Error()))
		return
	}

	if err := h.exportService.Import(envelope); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data imported successfully"})
}

// ClearAll wipes every collection and reseeds default settings
func (h *SyncHandler) ClearAll(c *gin.Context) {
	if err := h.exportService.ClearAll(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
}

// Push uploads the local snapshot to the remote store
func (h *SyncHandler) Push(c *gin.Context) {
	if h.sync == nil {
		respondWithError(c, apperrors.ErrSyncDisabled)
		return
	}

	if err := h.sync.Push(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push completed"})
}

// Pull downloads the remote snapshot, replacing local collections
func (h *SyncHandler) Pull(c *gin.Context) {
	if h.sync == nil {
		respondWithError(c, apperrors.ErrSyncDisabled)
		return
	}

	if err := h.sync.Pull(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pull completed"})
}
