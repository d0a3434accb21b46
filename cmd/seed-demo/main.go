package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/database"
	"github.com/campushq/campus-backend/internal/logger"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseRepo := repository.NewCourseRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	courseService := service.NewCourseService(courseRepo)
	studentService := service.NewStudentService(studentRepo, enrollmentRepo, courseRepo)

	fmt.Println("=== Seeding Demo Course and Students ===")

	// Course BSIT with two first-year sections.
	_, err = courseService.CreateCourse(ctx, &model.CreateCourseRequest{
		Code:        "BSIT",
		Name:        "BS Information Technology",
		Description: "Four year information technology program",
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicateCourse) {
		log.Fatal().Err(err).Msg("Failed to create course")
	}

	for i := 0; i < 2; i++ {
		if _, err := courseService.CreateSection(ctx, &model.CreateSectionRequest{
			CourseCode: "BSIT",
			Year:       1,
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to create section")
		}
	}

	subjects := []string{
		"Introduction to Computing",
		"Computer Programming 1",
		"Mathematics in the Modern World",
		"Purposive Communication",
		"Physical Education 1",
	}
	for _, subject := range subjects {
		// SectionNumber 0 attaches the subject to every section of the year.
		if _, err := courseService.AddSubject(ctx, &model.AddSubjectRequest{
			CourseCode: "BSIT",
			Year:       1,
			Subject:    subject,
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to add subject")
		}
	}

	names := []string{
		"Juan Dela Cruz", "Maria Santos", "Jose Reyes", "Ana Bautista", "Pedro Garcia",
		"Luz Mendoza", "Carlos Aquino", "Rosa Villanueva", "Miguel Torres", "Elena Ramos",
		"Ramon Castillo", "Teresa Flores", "Andres Navarro", "Carmen Domingo", "Felipe Cruz",
		"Gloria Pascual", "Ricardo Salazar", "Josefa Morales", "Antonio Rivera", "Isabel Gutierrez",
		"Manuel Ortega", "Corazon Lim", "Eduardo Tan", "Lourdes Chua", "Roberto Ong",
		"Cecilia Go", "Francisco Sy", "Victoria Uy", "Daniel Yap", "Remedios Ko",
	}

	successCount := 0
	for i, name := range names {
		// Alternate students between the two sections.
		section := fmt.Sprintf("BSIT-1-%d", i%2+1)

		if _, err := studentService.Create(ctx, &model.CreateStudentRequest{
			Name:    name,
			Contact: fmt.Sprintf("0917%07d", i+1),
			Section: section,
		}); err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
			continue
		}
		successCount++
		if (i+1)%10 == 0 {
			fmt.Printf("Created %d students...\n", i+1)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
