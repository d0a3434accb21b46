package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/handler"
	"github.com/campushq/campus-backend/internal/middleware"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Admin         *handler.AdminHandler
	StudentMgmt   *handler.StudentManagementHandler
	TeacherMgmt   *handler.TeacherManagementHandler
	Course        *handler.CourseHandler
	Fee           *handler.FeeHandler
	Payroll       *handler.PayrollHandler
	ParentMgmt    *handler.ParentManagementHandler
	Notification  *handler.NotificationHandler
	Discipline    *handler.DisciplineHandler
	ExamSchedule  *handler.ExamScheduleHandler
	Snapshot      *handler.SnapshotHandler
	Dashboard     *handler.DashboardHandler
	Export        *handler.ExportHandler
	StudentPortal *handler.StudentPortalHandler
	TeacherPortal *handler.TeacherPortalHandler
	ParentPortal  *handler.ParentPortalHandler
	WS            *handler.WSHandler
	System        *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		limited := auth.Group("")
		limited.Use(authLimiter.Middleware())
		{
			limited.POST("/admin/login", handlers.Auth.AdminLogin)
			limited.POST("/admin/recover", handlers.Auth.AdminRecover)
			limited.GET("/admin/recovery-questions/:username", handlers.Auth.RecoveryQuestions)
			limited.POST("/portal/register", handlers.Auth.PortalRegister)
			limited.POST("/portal/login", handlers.Auth.PortalLogin)
		}

		// Authenticated profile routes.
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.AdminMe)
		auth.POST("/admin/change-password", middleware.RequireAdminJWT(authService), handlers.Auth.AdminChangePassword)
		auth.POST("/portal/logout", middleware.RequirePortalJWT(authService), handlers.Auth.PortalLogout)
		auth.GET("/portal/me", middleware.RequirePortalJWT(authService), handlers.Auth.PortalMe)
		auth.POST("/portal/change-password", middleware.RequirePortalJWT(authService), handlers.Auth.PortalChangePassword)
	}

	// ─── 2. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Admin accounts and roles
		adminAPI.GET("/admins", handlers.Admin.ListAdmins)
		adminAPI.POST("/admins", handlers.Admin.CreateAdmin)
		adminAPI.GET("/roles", handlers.Admin.ListRoles)
		adminAPI.POST("/roles", handlers.Admin.CreateRole)
		adminAPI.GET("/permissions", handlers.Admin.ListPermissions)

		// System monitoring (open to all admins)
		adminAPI.GET("/system/metrics", handlers.System.Metrics)

		// Student management
		studentsRead := middleware.RequirePermission(string(model.PermissionStudentsRead))
		studentsWrite := middleware.RequirePermission(string(model.PermissionStudentsWrite))
		adminAPI.GET("/students", studentsRead, handlers.StudentMgmt.ListStudents)
		adminAPI.POST("/students", studentsWrite, handlers.StudentMgmt.CreateStudent)
		adminAPI.GET("/students/:student_id", studentsRead, handlers.StudentMgmt.GetStudent)
		adminAPI.PUT("/students/:student_id", studentsWrite, handlers.StudentMgmt.UpdateStudent)
		adminAPI.DELETE("/students/:student_id", studentsWrite, handlers.StudentMgmt.DeleteStudent)
		adminAPI.POST("/students/:student_id/enrollments", studentsWrite, handlers.StudentMgmt.EnrollSubject)
		adminAPI.DELETE("/students/:student_id/enrollments/:subject", studentsWrite, handlers.StudentMgmt.UnenrollSubject)
		adminAPI.POST("/students/:student_id/enrollments/:subject/exempt", studentsWrite, handlers.StudentMgmt.SetExempt)
		adminAPI.POST("/students/:student_id/attendance", studentsWrite, handlers.StudentMgmt.MarkAttendance)
		adminAPI.GET("/students/:student_id/attendance", studentsRead, handlers.StudentMgmt.GetAttendance)
		adminAPI.POST("/students/:student_id/exams", studentsWrite, handlers.StudentMgmt.RecordExam)
		adminAPI.POST("/students/:student_id/activities", studentsWrite, handlers.StudentMgmt.AddActivity)
		adminAPI.GET("/students/:student_id/grades", studentsRead, handlers.StudentMgmt.GetGrades)
		adminAPI.POST("/students/:student_id/reset-session",
			middleware.RequirePermission(string(model.PermissionAccountsReset)),
			handlers.StudentMgmt.ResetPortalSession,
		)

		// Teacher management
		teachersRead := middleware.RequirePermission(string(model.PermissionTeachersRead))
		teachersWrite := middleware.RequirePermission(string(model.PermissionTeachersWrite))
		adminAPI.GET("/teachers", teachersRead, handlers.TeacherMgmt.ListTeachers)
		adminAPI.POST("/teachers", teachersWrite, handlers.TeacherMgmt.CreateTeacher)
		adminAPI.GET("/teachers/:teacher_id", teachersRead, handlers.TeacherMgmt.GetTeacher)
		adminAPI.PUT("/teachers/:teacher_id", teachersWrite, handlers.TeacherMgmt.UpdateTeacher)
		adminAPI.DELETE("/teachers/:teacher_id", teachersWrite, handlers.TeacherMgmt.DeleteTeacher)
		adminAPI.POST("/teachers/:teacher_id/qualifications", teachersWrite, handlers.TeacherMgmt.AddQualification)
		adminAPI.POST("/teachers/:teacher_id/subjects", teachersWrite, handlers.TeacherMgmt.AddSubject)
		adminAPI.DELETE("/teachers/:teacher_id/subjects/:subject", teachersWrite, handlers.TeacherMgmt.RemoveSubject)
		adminAPI.POST("/teachers/:teacher_id/sections", teachersWrite, handlers.TeacherMgmt.AssignSection)
		adminAPI.DELETE("/teachers/:teacher_id/sections/:section", teachersWrite, handlers.TeacherMgmt.UnassignSection)
		adminAPI.GET("/teachers/:teacher_id/schedules", teachersRead, handlers.TeacherMgmt.GetSchedules)
		adminAPI.POST("/teachers/:teacher_id/schedules", teachersWrite, handlers.TeacherMgmt.AddSchedule)
		adminAPI.DELETE("/teachers/:teacher_id/schedules/:schedule_id", teachersWrite, handlers.TeacherMgmt.RemoveSchedule)
		adminAPI.POST("/teachers/:teacher_id/reset-session",
			middleware.RequirePermission(string(model.PermissionAccountsReset)),
			handlers.TeacherMgmt.ResetPortalSession,
		)
		adminAPI.GET("/leaves", teachersRead, handlers.TeacherMgmt.ListLeaves)
		adminAPI.POST("/leaves/:leave_id/review", teachersWrite, handlers.TeacherMgmt.ReviewLeave)

		// Courses and sections
		coursesRead := middleware.RequirePermission(string(model.PermissionCoursesRead))
		coursesWrite := middleware.RequirePermission(string(model.PermissionCoursesWrite))
		adminAPI.GET("/courses", coursesRead, handlers.Course.ListCourses)
		adminAPI.POST("/courses", coursesWrite, handlers.Course.CreateCourse)
		adminAPI.DELETE("/courses/:code", coursesWrite, handlers.Course.DeleteCourse)
		adminAPI.GET("/sections", coursesRead, handlers.Course.ListSections)
		adminAPI.POST("/sections", coursesWrite, handlers.Course.CreateSection)
		adminAPI.GET("/sections/:section", coursesRead, handlers.Course.GetSection)
		adminAPI.POST("/subjects", coursesWrite, handlers.Course.AddSubject)

		// Fees
		feesRead := middleware.RequirePermission(string(model.PermissionFeesRead))
		feesWrite := middleware.RequirePermission(string(model.PermissionFeesWrite))
		adminAPI.GET("/fees/particulars", feesRead, handlers.Fee.ListParticulars)
		adminAPI.POST("/fees/particulars", feesWrite, handlers.Fee.CreateParticular)
		adminAPI.PUT("/fees/particulars/:name", feesWrite, handlers.Fee.UpdateParticular)
		adminAPI.DELETE("/fees/particulars/:name", feesWrite, handlers.Fee.DeleteParticular)
		adminAPI.POST("/fees/structures", feesWrite, handlers.Fee.CreateStructure)
		adminAPI.GET("/fees/structures/:code/:year", feesRead, handlers.Fee.GetStructure)
		adminAPI.DELETE("/fees/structures/:code/:year", feesWrite, handlers.Fee.DeleteStructure)
		adminAPI.PUT("/fees/structures/:code/:year/subjects", feesWrite, handlers.Fee.SetSubjectFee)
		adminAPI.POST("/fees/structures/:code/:year/particulars", feesWrite, handlers.Fee.SelectParticular)
		adminAPI.DELETE("/fees/structures/:code/:year/particulars/:name", feesWrite, handlers.Fee.DeselectParticular)
		adminAPI.POST("/fees/invoices/generate", feesWrite, handlers.Fee.GenerateInvoices)
		adminAPI.POST("/fees/invoices", feesWrite, handlers.Fee.CreateCustomInvoice)
		adminAPI.GET("/fees/invoices", feesRead, handlers.Fee.ListInvoices)
		adminAPI.GET("/fees/invoices/:invoice_id", feesRead, handlers.Fee.GetInvoice)
		adminAPI.PUT("/fees/invoices/:invoice_id/status", feesWrite, handlers.Fee.UpdateInvoiceStatus)
		adminAPI.POST("/fees/invoices/:invoice_id/payments", feesWrite, handlers.Fee.RecordPayment)
		adminAPI.GET("/fees/invoices/:invoice_id/payments", feesRead, handlers.Fee.ListPayments)

		// Payroll
		payrollRead := middleware.RequirePermission(string(model.PermissionPayrollRead))
		payrollWrite := middleware.RequirePermission(string(model.PermissionPayrollWrite))
		adminAPI.GET("/payroll/rates", payrollRead, handlers.Payroll.ListWorkloadRates)
		adminAPI.PUT("/payroll/rates", payrollWrite, handlers.Payroll.SetWorkloadRate)
		adminAPI.GET("/payroll/earnings", payrollRead, handlers.Payroll.GetEarningsConfig)
		adminAPI.PUT("/payroll/earnings", payrollWrite, handlers.Payroll.UpdateEarningsConfig)
		adminAPI.GET("/payroll/deductions", payrollRead, handlers.Payroll.GetDeductionConfig)
		adminAPI.PUT("/payroll/deductions", payrollWrite, handlers.Payroll.UpdateDeductionConfig)
		adminAPI.GET("/payroll/bonuses", payrollRead, handlers.Payroll.ListBonuses)
		adminAPI.POST("/payroll/bonuses", payrollWrite, handlers.Payroll.CreateBonus)
		adminAPI.DELETE("/payroll/bonuses/:bonus_id", payrollWrite, handlers.Payroll.DeleteBonus)
		adminAPI.POST("/payroll/runs", payrollWrite, handlers.Payroll.CreateRun)
		adminAPI.GET("/payroll/runs/:run_id", payrollRead, handlers.Payroll.GetRun)
		adminAPI.POST("/payroll/runs/:run_id/calculate", payrollWrite, handlers.Payroll.CalculateRun)
		adminAPI.POST("/payroll/runs/:run_id/finalize", payrollWrite, handlers.Payroll.FinalizeRun)
		adminAPI.GET("/payroll/teachers/:teacher_id/runs", payrollRead, handlers.Payroll.ListRunsByTeacher)

		// Parents
		parentsRead := middleware.RequirePermission(string(model.PermissionParentsRead))
		parentsWrite := middleware.RequirePermission(string(model.PermissionParentsWrite))
		adminAPI.GET("/parents", parentsRead, handlers.ParentMgmt.ListParents)
		adminAPI.POST("/parents", parentsWrite, handlers.ParentMgmt.CreateParent)
		adminAPI.GET("/parents/:parent_id", parentsRead, handlers.ParentMgmt.GetParent)
		adminAPI.PUT("/parents/:parent_id", parentsWrite, handlers.ParentMgmt.UpdateParent)
		adminAPI.DELETE("/parents/:parent_id", parentsWrite, handlers.ParentMgmt.DeleteParent)
		adminAPI.POST("/parents/:parent_id/students", parentsWrite, handlers.ParentMgmt.LinkStudent)
		adminAPI.DELETE("/parents/:parent_id/students/:student_id", parentsWrite, handlers.ParentMgmt.UnlinkStudent)
		adminAPI.POST("/parents/:parent_id/reset-session",
			middleware.RequirePermission(string(model.PermissionAccountsReset)),
			handlers.ParentMgmt.ResetPortalSession,
		)
		adminAPI.GET("/students/:student_id/parent", parentsRead, handlers.ParentMgmt.FindByStudent)

		// Notifications
		notifySend := middleware.RequirePermission(string(model.PermissionNotifySend))
		adminAPI.POST("/notifications", notifySend, handlers.Notification.Send)
		adminAPI.POST("/notifications/broadcast", notifySend, handlers.Notification.Broadcast)
		adminAPI.GET("/parents/:parent_id/notifications", parentsRead, handlers.Notification.ListForParent)

		// Discipline
		disciplineWrite := middleware.RequirePermission(string(model.PermissionDisciplineWrite))
		adminAPI.POST("/discipline", disciplineWrite, handlers.Discipline.Create)
		adminAPI.POST("/discipline/:record_id/resolve", disciplineWrite, handlers.Discipline.Resolve)
		adminAPI.GET("/students/:student_id/discipline", studentsRead, handlers.Discipline.ListByStudent)

		// Exam schedules
		adminAPI.POST("/exam-schedules", coursesWrite, handlers.ExamSchedule.Create)
		adminAPI.GET("/exam-schedules", coursesRead, handlers.ExamSchedule.ListBySection)
		adminAPI.PUT("/exam-schedules/:exam_schedule_id", coursesWrite, handlers.ExamSchedule.Update)
		adminAPI.DELETE("/exam-schedules/:exam_schedule_id", coursesWrite, handlers.ExamSchedule.Delete)

		// Term snapshots
		adminAPI.POST("/snapshots",
			middleware.RequirePermission(string(model.PermissionSnapshotsWrite)),
			handlers.Snapshot.Capture,
		)
		adminAPI.GET("/students/:student_id/history", studentsRead, handlers.Snapshot.History)

		// Reports and export
		reportsRead := middleware.RequirePermission(string(model.PermissionReportsRead))
		dashboardCache := middleware.CacheControl(60)
		adminAPI.GET("/dashboard", reportsRead, dashboardCache, handlers.Dashboard.GetSummary)
		adminAPI.GET("/dashboard/financial", reportsRead, dashboardCache, handlers.Dashboard.GetFinancialSummary)
		adminAPI.GET("/export/sections/:section/grades", studentsRead, handlers.Export.SectionGradeSheet)
	}

	// ─── 3. Portal Group (JWT + Single Device) ─────────────────────────
	portalAPI := router.Group("/api/v1/portal")
	portalAPI.Use(
		middleware.RequirePortalJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		student := portalAPI.Group("/student")
		student.Use(middleware.RequirePortalRole(model.PortalRoleStudent))
		{
			student.GET("/grades", handlers.StudentPortal.GetGrades)
			student.GET("/attendance", handlers.StudentPortal.GetAttendance)
			student.POST("/evaluations", handlers.StudentPortal.EvaluateTeacher)
			student.GET("/discipline", handlers.StudentPortal.GetDiscipline)
			student.GET("/exam-schedules", handlers.StudentPortal.GetExamSchedules)
			student.GET("/history", handlers.StudentPortal.GetHistory)
		}

		teacher := portalAPI.Group("/teacher")
		teacher.Use(middleware.RequirePortalRole(model.PortalRoleTeacher))
		{
			teacher.GET("/schedules", handlers.TeacherPortal.GetSchedules)
			teacher.GET("/sections", handlers.TeacherPortal.GetSections)
			teacher.GET("/sections/:section/students", handlers.TeacherPortal.GetRoster)
			teacher.POST("/students/:student_id/attendance", handlers.TeacherPortal.MarkAttendance)
			teacher.POST("/students/:student_id/exams", handlers.TeacherPortal.RecordExam)
			teacher.POST("/students/:student_id/activities", handlers.TeacherPortal.AddActivity)
			teacher.POST("/leaves", handlers.TeacherPortal.SubmitLeave)
			teacher.GET("/leaves", handlers.TeacherPortal.ListMyLeaves)
			teacher.GET("/evaluations", handlers.TeacherPortal.MyEvaluations)
		}

		parent := portalAPI.Group("/parent")
		parent.Use(middleware.RequirePortalRole(model.PortalRoleParent))
		{
			parent.GET("/children", handlers.ParentPortal.Children)
			parent.GET("/children/:student_id/grades", handlers.ParentPortal.ChildGrades)
			parent.GET("/children/:student_id/attendance", handlers.ParentPortal.ChildAttendance)
			parent.GET("/children/:student_id/fees", handlers.ParentPortal.ChildFees)
			parent.GET("/children/:student_id/exam-schedules", handlers.ParentPortal.ChildExamSchedules)
			parent.GET("/children/:student_id/discipline", handlers.ParentPortal.ChildDiscipline)
			parent.GET("/children/:student_id/history", handlers.ParentPortal.ChildHistory)
			parent.GET("/notifications", handlers.ParentPortal.Inbox)
			parent.POST("/notifications/:notification_id/read", handlers.ParentPortal.MarkRead)
			parent.POST("/meetings", handlers.ParentPortal.RequestMeeting)
			parent.POST("/messages", handlers.ParentPortal.SendMessage)
		}
	}

	// ─── 4. WebSocket Group (Portal WS Auth) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequirePortalWSAuth(authService))
	{
		ws.GET("/portal/notifications", handlers.WS.NotificationStream)
	}

	return router
}
