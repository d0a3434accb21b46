package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/middleware"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// StudentPortalHandler handles the student-facing portal endpoints.
// Every route reads the student ID from the session claims, never from
// the request, so students can only reach their own records.
type StudentPortalHandler struct {
	studentService      *service.StudentService
	evaluationService   *service.EvaluationService
	disciplineService   *service.DisciplineService
	examScheduleService *service.ExamScheduleService
	snapshotService     *service.SnapshotService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	studentService *service.StudentService,
	evaluationService *service.EvaluationService,
	disciplineService *service.DisciplineService,
	examScheduleService *service.ExamScheduleService,
	snapshotService *service.SnapshotService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		studentService:      studentService,
		evaluationService:   evaluationService,
		disciplineService:   disciplineService,
		examScheduleService: examScheduleService,
		snapshotService:     snapshotService,
	}
}

// GetGrades godoc
// GET /api/v1/portal/student/grades
func (h *StudentPortalHandler) GetGrades(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	grades, err := h.studentService.GetGrades(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	gpa, hasGPA, err := h.studentService.GetGPA(c.Request.Context(), claims.UserID)
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
// GET /api/v1/portal/student/attendance
func (h *StudentPortalHandler) GetAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.studentService.GetAttendanceSummary(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": summary})
}

// EvaluateTeacher godoc
// POST /api/v1/portal/student/evaluations
// Submits an anonymous 1..5 rating of a teacher.
func (h *StudentPortalHandler) EvaluateTeacher(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitEvaluationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	evaluation, err := h.evaluationService.Submit(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"evaluation": evaluation})
}

// GetDiscipline godoc
// GET /api/v1/portal/student/discipline
func (h *StudentPortalHandler) GetDiscipline(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.disciplineService.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// GetExamSchedules godoc
// GET /api/v1/portal/student/exam-schedules
// Returns the exams announced for the student's own section.
func (h *StudentPortalHandler) GetExamSchedules(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	schedules, err := h.examScheduleService.ListBySection(c.Request.Context(), student.SectionKey)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_schedules": schedules})
}

// GetHistory godoc
// GET /api/v1/portal/student/history
// Returns the student's archived term snapshots.
func (h *StudentPortalHandler) GetHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	snapshots, err := h.snapshotService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"snapshots": snapshots})
}
