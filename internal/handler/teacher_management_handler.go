package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// TeacherManagementHandler handles the admin-side faculty endpoints:
// records, teaching loads, section assignments, timetables and leave review.
type TeacherManagementHandler struct {
	teacherService *service.TeacherService
	authService    *service.AuthService
}

// NewTeacherManagementHandler creates a new TeacherManagementHandler.
func NewTeacherManagementHandler(teacherService *service.TeacherService, authService *service.AuthService) *TeacherManagementHandler {
	return &TeacherManagementHandler{teacherService: teacherService, authService: authService}
}

// ListTeachers godoc
// GET /api/v1/admin/teachers
func (h *TeacherManagementHandler) ListTeachers(c *gin.Context) {
	page, perPage := pageParams(c)

	teachers, pagination, err := h.teacherService.ListTeachers(c.Request.Context(), page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"teachers": teachers}, pagination)
}

// GetTeacher godoc
// GET /api/v1/admin/teachers/:teacher_id
func (h *TeacherManagementHandler) GetTeacher(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// CreateTeacher godoc
// POST /api/v1/admin/teachers
func (h *TeacherManagementHandler) CreateTeacher(c *gin.Context) {
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/admin/teachers/:teacher_id
func (h *TeacherManagementHandler) UpdateTeacher(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req model.UpdateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// DeleteTeacher godoc
// DELETE /api/v1/admin/teachers/:teacher_id
func (h *TeacherManagementHandler) DeleteTeacher(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "teacher deleted"})
}

// AddQualification godoc
// POST /api/v1/admin/teachers/:teacher_id/qualifications
func (h *TeacherManagementHandler) AddQualification(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req model.AddQualificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.teacherService.AddQualification(c.Request.Context(), id, req.Qualification); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "qualification added"})
}

// AddSubject godoc
// POST /api/v1/admin/teachers/:teacher_id/subjects
func (h *TeacherManagementHandler) AddSubject(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req model.AddTaughtSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.teacherService.AddSubject(c.Request.Context(), id, req.Subject); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subject added"})
}

// RemoveSubject godoc
// DELETE /api/v1/admin/teachers/:teacher_id/subjects/:subject
func (h *TeacherManagementHandler) RemoveSubject(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	if err := h.teacherService.RemoveSubject(c.Request.Context(), id, c.Param("subject")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subject removed"})
}

// AssignSection godoc
// POST /api/v1/admin/teachers/:teacher_id/sections
func (h *TeacherManagementHandler) AssignSection(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req model.AssignSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.teacherService.AssignSection(c.Request.Context(), id, req.Section); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section assigned"})
}

// UnassignSection godoc
// DELETE /api/v1/admin/teachers/:teacher_id/sections/:section
func (h *TeacherManagementHandler) UnassignSection(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	if err := h.teacherService.UnassignSection(c.Request.Context(), id, c.Param("section")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section unassigned"})
}

// GetSchedules godoc
// GET /api/v1/admin/teachers/:teacher_id/schedules
func (h *TeacherManagementHandler) GetSchedules(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	schedules, err := h.teacherService.GetSchedules(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedules": schedules})
}

// AddSchedule godoc
// POST /api/v1/admin/teachers/:teacher_id/schedules
// Adds a timetable slot, rejecting overlaps on the teacher's week.
func (h *TeacherManagementHandler) AddSchedule(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req model.AddScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	schedule, err := h.teacherService.AddSchedule(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"schedule": schedule})
}

// RemoveSchedule godoc
// DELETE /api/v1/admin/teachers/:teacher_id/schedules/:schedule_id
func (h *TeacherManagementHandler) RemoveSchedule(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "schedule_id")
	if !ok {
		return
	}

	if err := h.teacherService.RemoveSchedule(c.Request.Context(), id, scheduleID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "schedule removed"})
}

// ListLeaves godoc
// GET /api/v1/admin/leaves?teacher_id=&status=pending
// Lists leave requests across the faculty, optionally filtered.
func (h *TeacherManagementHandler) ListLeaves(c *gin.Context) {
	var teacherID *int
	if raw := c.Query("teacher_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		teacherID = &id
	}

	var status *model.LeaveStatus
	if raw := c.Query("status"); raw != "" {
		st := model.LeaveStatus(raw)
		status = &st
	}

	leaves, err := h.teacherService.ListLeaves(c.Request.Context(), teacherID, status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaves": leaves})
}

// ReviewLeave godoc
// POST /api/v1/admin/leaves/:leave_id/review
// Approves or rejects a pending leave request.
func (h *TeacherManagementHandler) ReviewLeave(c *gin.Context) {
	leaveID, ok := pathID(c, "leave_id")
	if !ok {
		return
	}

	var req model.ReviewLeaveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	leave, err := h.teacherService.ReviewLeave(c.Request.Context(), leaveID, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leave": leave})
}

// ResetPortalSession godoc
// POST /api/v1/admin/teachers/:teacher_id/reset-session
func (h *TeacherManagementHandler) ResetPortalSession(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	if _, err := h.teacherService.GetByID(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	if err := h.authService.ResetPortalSession(c.Request.Context(), model.PortalRoleTeacher, id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "portal session reset"})
}
