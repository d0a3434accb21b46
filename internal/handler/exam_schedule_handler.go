package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// ExamScheduleHandler handles exam announcements per section.
type ExamScheduleHandler struct {
	examScheduleService *service.ExamScheduleService
}

// NewExamScheduleHandler creates a new ExamScheduleHandler.
func NewExamScheduleHandler(examScheduleService *service.ExamScheduleService) *ExamScheduleHandler {
	return &ExamScheduleHandler{examScheduleService: examScheduleService}
}

// Create godoc
// POST /api/v1/admin/exam-schedules
func (h *ExamScheduleHandler) Create(c *gin.Context) {
	var req model.CreateExamScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	schedule, err := h.examScheduleService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam_schedule": schedule})
}

// Update godoc
// PUT /api/v1/admin/exam-schedules/:exam_schedule_id
func (h *ExamScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "exam_schedule_id")
	if !ok {
		return
	}

	var req model.UpdateExamScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	schedule, err := h.examScheduleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_schedule": schedule})
}

// ListBySection godoc
// GET /api/v1/admin/exam-schedules?section=BSIT-3-1
func (h *ExamScheduleHandler) ListBySection(c *gin.Context) {
	key := c.Query("section")
	if !validator.ValidSectionKey(key) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSection)
		return
	}

	schedules, err := h.examScheduleService.ListBySection(c.Request.Context(), key)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_schedules": schedules})
}

// Delete godoc
// DELETE /api/v1/admin/exam-schedules/:exam_schedule_id
func (h *ExamScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "exam_schedule_id")
	if !ok {
		return
	}

	if err := h.examScheduleService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "exam schedule deleted"})
}
