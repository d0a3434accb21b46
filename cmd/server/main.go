package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/database"
	"github.com/campushq/campus-backend/internal/handler"
	"github.com/campushq/campus-backend/internal/logger"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/router"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
	"github.com/campushq/campus-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Campus Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	parentRepo := repository.NewParentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	feeRepo := repository.NewFeeRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	evaluationRepo := repository.NewEvaluationRepository(pool)
	disciplineRepo := repository.NewDisciplineRepository(pool)
	examScheduleRepo := repository.NewExamScheduleRepository(pool)
	snapshotRepo := repository.NewSnapshotRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, adminRepo, roleRepo, accountRepo, studentRepo, teacherRepo, parentRepo)
	adminService := service.NewAdminService(adminRepo, roleRepo, authService)
	studentService := service.NewStudentService(studentRepo, enrollmentRepo, courseRepo)
	teacherService := service.NewTeacherService(teacherRepo, scheduleRepo)
	courseService := service.NewCourseService(courseRepo)
	notifyService := service.NewNotificationService(notificationRepo, parentRepo, rdb)
	parentService := service.NewParentService(parentRepo, studentRepo, authService)
	feeService := service.NewFeeService(feeRepo, studentRepo, courseRepo, notifyService)
	payrollService := service.NewPayrollService(payrollRepo, teacherRepo)
	evaluationService := service.NewEvaluationService(evaluationRepo, teacherRepo)
	disciplineService := service.NewDisciplineService(disciplineRepo, studentRepo)
	examScheduleService := service.NewExamScheduleService(examScheduleRepo, courseService)
	snapshotService := service.NewSnapshotService(snapshotRepo, studentService)
	dashboardService := service.NewDashboardService(dashboardRepo)
	exportService := service.NewExportService(studentService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Admin:         handler.NewAdminHandler(adminService),
		StudentMgmt:   handler.NewStudentManagementHandler(studentService, authService, notifyService),
		TeacherMgmt:   handler.NewTeacherManagementHandler(teacherService, authService),
		Course:        handler.NewCourseHandler(courseService),
		Fee:           handler.NewFeeHandler(feeService),
		Payroll:       handler.NewPayrollHandler(payrollService),
		ParentMgmt:    handler.NewParentManagementHandler(parentService, authService),
		Notification:  handler.NewNotificationHandler(notifyService),
		Discipline:    handler.NewDisciplineHandler(disciplineService),
		ExamSchedule:  handler.NewExamScheduleHandler(examScheduleService),
		Snapshot:      handler.NewSnapshotHandler(snapshotService),
		Dashboard:     handler.NewDashboardHandler(dashboardService, feeService),
		Export:        handler.NewExportHandler(exportService),
		StudentPortal: handler.NewStudentPortalHandler(studentService, evaluationService, disciplineService, examScheduleService, snapshotService),
		TeacherPortal: handler.NewTeacherPortalHandler(teacherService, studentService, evaluationService, notifyService),
		ParentPortal: handler.NewParentPortalHandler(
			parentService, studentService, feeService, notifyService,
			disciplineService, examScheduleService, snapshotService,
		),
		WS:     handler.NewWSHandler(rdb, notifyService, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notifyWorker := worker.NewNotifyWorker(notificationRepo, rdb, log)
	overdueWorker := worker.NewOverdueWorker(feeRepo, cfg.OverdueSweepInterval, log)

	go notifyWorker.Start(workerCtx)
	go overdueWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the notify queue to drain.
	workerCancel()
	select {
	case <-notifyWorker.Done():
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Notification queue drain timed out")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
