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

// ParentPortalHandler handles the parent-facing portal endpoints. Child
// routes verify the parent-student link before exposing any data.
type ParentPortalHandler struct {
	parentService       *service.ParentService
	studentService      *service.StudentService
	feeService          *service.FeeService
	notifyService       *service.NotificationService
	disciplineService   *service.DisciplineService
	examScheduleService *service.ExamScheduleService
	snapshotService     *service.SnapshotService
}

// NewParentPortalHandler creates a new ParentPortalHandler.
func NewParentPortalHandler(
	parentService *service.ParentService,
	studentService *service.StudentService,
	feeService *service.FeeService,
	notifyService *service.NotificationService,
	disciplineService *service.DisciplineService,
	examScheduleService *service.ExamScheduleService,
	snapshotService *service.SnapshotService,
) *ParentPortalHandler {
	return &ParentPortalHandler{
		parentService:       parentService,
		studentService:      studentService,
		feeService:          feeService,
		notifyService:       notifyService,
		disciplineService:   disciplineService,
		examScheduleService: examScheduleService,
		snapshotService:     snapshotService,
	}
}

// requireChild checks the link and loads the child record.
// Replies on failure and returns nil.
func (h *ParentPortalHandler) requireChild(c *gin.Context, parentID, studentID int) *model.Student {
	if err := h.parentService.RequireLink(c.Request.Context(), parentID, studentID); err != nil {
		failFromError(c, err)
		return nil
	}
	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return nil
	}
	return student
}

// Children godoc
// GET /api/v1/portal/parent/children
func (h *ParentPortalHandler) Children(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	children, err := h.parentService.Children(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"children": children})
}

// ChildGrades godoc
// GET /api/v1/portal/parent/children/:student_id/grades
func (h *ParentPortalHandler) ChildGrades(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if h.requireChild(c, claims.UserID, studentID) == nil {
		return
	}

	grades, err := h.studentService.GetGrades(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	gpa, hasGPA, err := h.studentService.GetGPA(c.Request.Context(), studentID)
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

// ChildAttendance godoc
// GET /api/v1/portal/parent/children/:student_id/attendance
func (h *ParentPortalHandler) ChildAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if h.requireChild(c, claims.UserID, studentID) == nil {
		return
	}

	summary, err := h.studentService.GetAttendanceSummary(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": summary})
}

// ChildFees godoc
// GET /api/v1/portal/parent/children/:student_id/fees
// Returns the child's invoices with billed and paid totals.
func (h *ParentPortalHandler) ChildFees(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if h.requireChild(c, claims.UserID, studentID) == nil {
		return
	}

	invoices, totalBilled, totalPaid, err := h.feeService.Balance(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"invoices":     invoices,
		"total_billed": totalBilled,
		"total_paid":   totalPaid,
		"balance":      totalBilled - totalPaid,
	})
}

// ChildExamSchedules godoc
// GET /api/v1/portal/parent/children/:student_id/exam-schedules
func (h *ParentPortalHandler) ChildExamSchedules(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	student := h.requireChild(c, claims.UserID, studentID)
	if student == nil {
		return
	}

	schedules, err := h.examScheduleService.ListBySection(c.Request.Context(), student.SectionKey)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_schedules": schedules})
}

// ChildDiscipline godoc
// GET /api/v1/portal/parent/children/:student_id/discipline
func (h *ParentPortalHandler) ChildDiscipline(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if h.requireChild(c, claims.UserID, studentID) == nil {
		return
	}

	records, err := h.disciplineService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// ChildHistory godoc
// GET /api/v1/portal/parent/children/:student_id/history
func (h *ParentPortalHandler) ChildHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if h.requireChild(c, claims.UserID, studentID) == nil {
		return
	}

	snapshots, err := h.snapshotService.History(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"snapshots": snapshots})
}

// Inbox godoc
// GET /api/v1/portal/parent/notifications?unread=true
func (h *ParentPortalHandler) Inbox(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pageParams(c)
	notifications, pagination, err := h.notifyService.Inbox(c.Request.Context(), claims.UserID, c.Query("unread") == "true", page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	unread, err := h.notifyService.CountUnread(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"notifications": notifications, "unread": unread}, pagination)
}

// MarkRead godoc
// POST /api/v1/portal/parent/notifications/:notification_id/read
func (h *ParentPortalHandler) MarkRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	notificationID, ok := pathID(c, "notification_id")
	if !ok {
		return
	}

	marked, err := h.notifyService.MarkRead(c.Request.Context(), claims.UserID, notificationID)
	if err != nil {
		failFromError(c, err)
		return
	}
	if !marked {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notification read"})
}

// RequestMeeting godoc
// POST /api/v1/portal/parent/meetings
// Files a meeting request; it lands in the notification ledger so the
// school has an audit trail.
func (h *ParentPortalHandler) RequestMeeting(c *gin.Context) {
	h.fileParentMessage(c, model.NotifyMeeting)
}

// SendMessage godoc
// POST /api/v1/portal/parent/messages
func (h *ParentPortalHandler) SendMessage(c *gin.Context) {
	h.fileParentMessage(c, model.NotifyMessage)
}

func (h *ParentPortalHandler) fileParentMessage(c *gin.Context, kind model.NotificationType) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ParentMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.notifyService.Enqueue(c.Request.Context(), service.NotifyPayload{
		ParentID: claims.UserID,
		Subject:  req.Subject,
		Message:  req.Message,
		Type:     kind,
	})
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "submitted"})
}
