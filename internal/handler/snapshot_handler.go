package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// SnapshotHandler handles end-of-term academic snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// Capture godoc
// POST /api/v1/admin/snapshots
// Archives the current grades and GPA of every student in a section.
// Snapshots are immutable once captured.
func (h *SnapshotHandler) Capture(c *gin.Context) {
	var req model.CaptureSnapshotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snapshots, err := h.snapshotService.CaptureSection(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"snapshots": snapshots})
}

// History godoc
// GET /api/v1/admin/students/:student_id/history
func (h *SnapshotHandler) History(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	snapshots, err := h.snapshotService.History(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"snapshots": snapshots})
}
