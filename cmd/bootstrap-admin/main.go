package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"golang.org/x/term"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/database"
	"github.com/campushq/campus-backend/internal/logger"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// superadminRole is created on first run and carries every permission.
const superadminRole = "superadmin"

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	authService := service.NewAuthService(cfg, nil, adminRepo, roleRepo, nil, nil, nil, nil)
	adminService := service.NewAdminService(adminRepo, roleRepo, authService)

	// ─── Ensure Superadmin Role ────────────────────────────────────────
	role, err := roleRepo.GetRoleByName(ctx, superadminRole)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Msg("Failed to look up superadmin role")
		}
		codes := make([]string, 0, len(model.AllPermissions))
		for _, p := range model.AllPermissions {
			codes = append(codes, string(p))
		}
		role, err = roleRepo.CreateRole(ctx, superadminRole, codes)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create superadmin role")
		}
		fmt.Printf("Created role '%s' with all permissions (ID: %d)\n", role.Name, role.ID)
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Bootstrap Admin Account ===")

	// Username
	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		fmt.Println("Error: Username must be at least 3 characters")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if err := validator.ValidatePassword(password); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// Three recovery questions
	questions := make([]model.SecurityQuestionInput, 0, 3)
	for i := 1; i <= 3; i++ {
		fmt.Printf("Recovery Question %d: ", i)
		question, _ := reader.ReadString('\n')
		question = strings.TrimSpace(question)
		if len(question) < 5 {
			fmt.Println("Error: Question must be at least 5 characters")
			return
		}

		fmt.Printf("Answer %d: ", i)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(answer)
		if len(answer) < 2 {
			fmt.Println("Error: Answer must be at least 2 characters")
			return
		}
		questions = append(questions, model.SecurityQuestionInput{Question: question, Answer: answer})
	}

	// ─── Create Admin ──────────────────────────────────────────────────
	admin, err := adminService.CreateAdmin(ctx, &model.CreateAdminRequest{
		Username:  username,
		Password:  password,
		RoleID:    role.ID,
		Questions: questions,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' created with registry number %s\n", admin.Username, admin.RegistryNo)
}
