package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/campushq/campus-backend/internal/middleware"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// TeacherPortalHandler handles the teacher-facing portal endpoints.
// Grade and attendance writes are restricted to students of sections the
// teacher is assigned to.
type TeacherPortalHandler struct {
	teacherService    *service.TeacherService
	studentService    *service.StudentService
	evaluationService *service.EvaluationService
	notifyService     *service.NotificationService
}

// NewTeacherPortalHandler creates a new TeacherPortalHandler.
func NewTeacherPortalHandler(
	teacherService *service.TeacherService,
	studentService *service.StudentService,
	evaluationService *service.EvaluationService,
	notifyService *service.NotificationService,
) *TeacherPortalHandler {
	return &TeacherPortalHandler{
		teacherService:    teacherService,
		studentService:    studentService,
		evaluationService: evaluationService,
		notifyService:     notifyService,
	}
}

// requireOwnStudent loads a student and checks the caller teaches their
// section. Replies on failure and returns nil.
func (h *TeacherPortalHandler) requireOwnStudent(c *gin.Context, teacherID, studentID int) *model.Student {
	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return nil
	}

	assigned, err := h.teacherService.IsAssignedTo(c.Request.Context(), teacherID, student.SectionKey)
	if err != nil {
		failFromError(c, err)
		return nil
	}
	if !assigned {
		response.Fail(c, http.StatusForbidden, response.ErrNotOwnSection)
		return nil
	}
	return student
}

// GetSchedules godoc
// GET /api/v1/portal/teacher/schedules
func (h *TeacherPortalHandler) GetSchedules(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	schedules, err := h.teacherService.GetSchedules(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedules": schedules})
}

// GetSections godoc
// GET /api/v1/portal/teacher/sections
func (h *TeacherPortalHandler) GetSections(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": teacher.Sections})
}

// GetRoster godoc
// GET /api/v1/portal/teacher/sections/:section/students
// Lists the students of one of the teacher's own sections.
func (h *TeacherPortalHandler) GetRoster(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	key := c.Param("section")
	if !validator.ValidSectionKey(key) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSection)
		return
	}

	assigned, err := h.teacherService.IsAssignedTo(c.Request.Context(), claims.UserID, key)
	if err != nil {
		failFromError(c, err)
		return
	}
	if !assigned {
		response.Fail(c, http.StatusForbidden, response.ErrNotOwnSection)
		return
	}

	students, section, err := h.studentService.ListBySection(c.Request.Context(), key)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section, "students": students})
}

// MarkAttendance godoc
// POST /api/v1/portal/teacher/students/:student_id/attendance
func (h *TeacherPortalHandler) MarkAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := h.requireOwnStudent(c, claims.UserID, studentID)
	if student == nil {
		return
	}

	record, err := h.studentService.MarkAttendance(c.Request.Context(), studentID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	// Parent alerting is best effort and never blocks the mark.
	if err := h.notifyService.NotifyAttendance(c.Request.Context(), student, req.Subject, req.Date, req.Status); err != nil {
		log.Warn().Err(err).Int("student_id", student.ID).Msg("Attendance alert not queued")
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// RecordExam godoc
// POST /api/v1/portal/teacher/students/:student_id/exams
func (h *TeacherPortalHandler) RecordExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.RecordExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := h.requireOwnStudent(c, claims.UserID, studentID)
	if student == nil {
		return
	}

	score, err := h.studentService.RecordExam(c.Request.Context(), studentID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	h.notifyGrade(c, student, req.Subject)

	response.Success(c, http.StatusOK, gin.H{"exam_score": score})
}

// AddActivity godoc
// POST /api/v1/portal/teacher/students/:student_id/activities
func (h *TeacherPortalHandler) AddActivity(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.AddActivityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := h.requireOwnStudent(c, claims.UserID, studentID)
	if student == nil {
		return
	}

	activity, err := h.studentService.AddActivity(c.Request.Context(), studentID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	h.notifyGrade(c, student, req.Subject)

	response.Success(c, http.StatusCreated, gin.H{"activity": activity})
}

func (h *TeacherPortalHandler) notifyGrade(c *gin.Context, student *model.Student, subject string) {
	ctx := c.Request.Context()
	grades, err := h.studentService.GetGrades(ctx, student.ID)
	if err != nil {
		return
	}
	for _, g := range grades {
		if g.Subject == subject {
			if err := h.notifyService.NotifyGradeUpdate(ctx, student, subject, g.Grade); err != nil {
				log.Warn().Err(err).Int("student_id", student.ID).Msg("Grade alert not queued")
			}
			return
		}
	}
}

// SubmitLeave godoc
// POST /api/v1/portal/teacher/leaves
func (h *TeacherPortalHandler) SubmitLeave(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitLeaveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	leave, err := h.teacherService.SubmitLeave(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"leave": leave})
}

// ListMyLeaves godoc
// GET /api/v1/portal/teacher/leaves
func (h *TeacherPortalHandler) ListMyLeaves(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	teacherID := claims.UserID
	leaves, err := h.teacherService.ListLeaves(c.Request.Context(), &teacherID, nil)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaves": leaves})
}

// MyEvaluations godoc
// GET /api/v1/portal/teacher/evaluations
// Returns the teacher's evaluations with the average rating.
func (h *TeacherPortalHandler) MyEvaluations(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	evaluations, summary, err := h.evaluationService.ListForTeacher(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"evaluations": evaluations, "summary": summary})
}
