package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// StudentManagementHandler handles the admin-side student endpoints:
// records, enrollments, attendance, grades and portal session resets.
type StudentManagementHandler struct {
	studentService *service.StudentService
	authService    *service.AuthService
	notifyService  *service.NotificationService
}

// NewStudentManagementHandler creates a new StudentManagementHandler.
func NewStudentManagementHandler(
	studentService *service.StudentService,
	authService *service.AuthService,
	notifyService *service.NotificationService,
) *StudentManagementHandler {
	return &StudentManagementHandler{
		studentService: studentService,
		authService:    authService,
		notifyService:  notifyService,
	}
}

// ListStudents godoc
// GET /api/v1/admin/students?section=BSIT-3-1&status=active
// Lists students with pagination, optionally filtered by section or status.
func (h *StudentManagementHandler) ListStudents(c *gin.Context) {
	page, perPage := pageParams(c)

	var status *model.EnrollmentStatus
	if raw := c.Query("status"); raw != "" {
		st := model.EnrollmentStatus(raw)
		status = &st
	}

	students, pagination, err := h.studentService.ListStudents(c.Request.Context(), c.Query("section"), status, page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// GetStudent godoc
// GET /api/v1/admin/students/:student_id
func (h *StudentManagementHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// CreateStudent godoc
// POST /api/v1/admin/students
// Registers a student and auto-enrolls the section's subjects.
func (h *StudentManagementHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/admin/students/:student_id
func (h *StudentManagementHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/admin/students/:student_id
// Removes a student and cascades enrollments, grades and attendance.
func (h *StudentManagementHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student deleted"})
}

// EnrollSubject godoc
// POST /api/v1/admin/students/:student_id/enrollments
func (h *StudentManagementHandler) EnrollSubject(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.EnrollSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.studentService.Enroll(c.Request.Context(), id, req.Subject)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UnenrollSubject godoc
// DELETE /api/v1/admin/students/:student_id/enrollments/:subject
func (h *StudentManagementHandler) UnenrollSubject(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.studentService.Unenroll(c.Request.Context(), id, c.Param("subject")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subject unenrolled"})
}

// SetExempt godoc
// POST /api/v1/admin/students/:student_id/enrollments/:subject/exempt
// Toggles a subject's exempt flag via the "exempt" body field.
func (h *StudentManagementHandler) SetExempt(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req struct {
		Exempt *bool `json:"exempt" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.studentService.SetExempt(c.Request.Context(), id, c.Param("subject"), *req.Exempt); err != nil {
		if errors.Is(err, service.ErrExemptUnchanged) {
			code := response.ErrNotExempt
			if *req.Exempt {
				code = response.ErrAlreadyExempt
			}
			response.Fail(c, http.StatusConflict, code)
			return
		}
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "exempt flag updated"})
}

// MarkAttendance godoc
// POST /api/v1/admin/students/:student_id/attendance
// Records an attendance mark; re-marking a date replaces the old status.
func (h *StudentManagementHandler) MarkAttendance(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.studentService.MarkAttendance(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	if student, err := h.studentService.GetByID(c.Request.Context(), id); err == nil {
		// Parent alerting is best effort and never blocks the mark.
		if err := h.notifyService.NotifyAttendance(c.Request.Context(), student, req.Subject, req.Date, req.Status); err != nil {
			log.Warn().Err(err).Int("student_id", id).Msg("Attendance alert not queued")
		}
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// RecordExam godoc
// POST /api/v1/admin/students/:student_id/exams
// Records (or replaces) an exam score for a subject.
func (h *StudentManagementHandler) RecordExam(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.RecordExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	score, err := h.studentService.RecordExam(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	h.notifyGrade(c, id, req.Subject)

	response.Success(c, http.StatusOK, gin.H{"exam_score": score})
}

// AddActivity godoc
// POST /api/v1/admin/students/:student_id/activities
func (h *StudentManagementHandler) AddActivity(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.AddActivityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	activity, err := h.studentService.AddActivity(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	h.notifyGrade(c, id, req.Subject)

	response.Success(c, http.StatusCreated, gin.H{"activity": activity})
}

// notifyGrade pushes the subject's recomputed grade to the linked parent.
func (h *StudentManagementHandler) notifyGrade(c *gin.Context, studentID int, subject string) {
	ctx := c.Request.Context()
	student, err := h.studentService.GetByID(ctx, studentID)
	if err != nil {
		return
	}
	grades, err := h.studentService.GetGrades(ctx, studentID)
	if err != nil {
		return
	}
	for _, g := range grades {
		if g.Subject == subject {
			if err := h.notifyService.NotifyGradeUpdate(ctx, student, subject, g.Grade); err != nil {
				log.Warn().Err(err).Int("student_id", studentID).Msg("Grade alert not queued")
			}
			return
		}
	}
}

// GetGrades godoc
// GET /api/v1/admin/students/:student_id/grades
// Returns per-subject grades plus the GPA over non-exempt subjects.
func (h *StudentManagementHandler) GetGrades(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	grades, err := h.studentService.GetGrades(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	gpa, hasGPA, err := h.studentService.GetGPA(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	body := gin.H{"grades": grades}
	if hasGPA {
		body["gpa"] = gpa
	} else {
		body["gpa"] = nil
	}
	response.Success(c, http.StatusOK, body)
}

// GetAttendance godoc
// GET /api/v1/admin/students/:student_id/attendance
// Returns the per-subject attendance summary.
func (h *StudentManagementHandler) GetAttendance(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	summary, err := h.studentService.GetAttendanceSummary(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": summary})
}

// ResetPortalSession godoc
// POST /api/v1/admin/students/:student_id/reset-session
// Clears the student's active portal session so they can log in again.
func (h *StudentManagementHandler) ResetPortalSession(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	if err := h.authService.ResetPortalSession(c.Request.Context(), model.PortalRoleStudent, id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "portal session reset"})
}
