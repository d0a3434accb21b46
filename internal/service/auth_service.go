package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSessionAlreadyActive = errors.New("another session is already active, ask an admin to reset it")
	ErrRecoveryFailed       = errors.New("security answers do not match")
	ErrAccountExists        = errors.New("account already exists for this registry number")
	ErrUnknownRegistryNo    = errors.New("no record matches this registry number")
)

// TokenType distinguishes portal vs admin tokens.
type TokenType string

const (
	TokenTypePortal TokenType = "portal"
	TokenTypeAdmin  TokenType = "admin"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType   TokenType        `json:"token_type"`
	UserID      int              `json:"user_id"`
	PortalRole  model.PortalRole `json:"portal_role,omitempty"` // Portal only
	RoleID      int              `json:"role_id,omitempty"`     // Admin only
	Permissions []string         `json:"permissions,omitempty"` // Admin only
}

// AuthService handles authentication, JWT, sessions and account recovery.
type AuthService struct {
	cfg         *config.Config
	rdb         *redis.Client
	adminRepo   *repository.AdminRepository
	roleRepo    *repository.RoleRepository
	accountRepo *repository.AccountRepository
	studentRepo *repository.StudentRepository
	teacherRepo *repository.TeacherRepository
	parentRepo  *repository.ParentRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	rdb *redis.Client,
	adminRepo *repository.AdminRepository,
	roleRepo *repository.RoleRepository,
	accountRepo *repository.AccountRepository,
	studentRepo *repository.StudentRepository,
	teacherRepo *repository.TeacherRepository,
	parentRepo *repository.ParentRepository,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		rdb:         rdb,
		adminRepo:   adminRepo,
		roleRepo:    roleRepo,
		accountRepo: accountRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		parentRepo:  parentRepo,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashAnswer hashes a security answer. Answers are case-folded and trimmed
// before hashing so recovery is forgiving about capitalisation.
func (s *AuthService) HashAnswer(answer string) (string, error) {
	return s.HashPassword(normalizeAnswer(answer))
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// AdminLogin authenticates an admin and returns a signed token with the
// role's permission codes embedded.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*model.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	permissions, err := s.roleRepo.GetPermissionsByRoleID(ctx, admin.RoleID)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(Claims{
		TokenType:   TokenTypeAdmin,
		UserID:      admin.ID,
		RoleID:      admin.RoleID,
		Permissions: permissions,
	})
	if err != nil {
		return nil, err
	}
	return &model.AdminLoginResponse{Token: token, Admin: *admin, Permissions: permissions}, nil
}

// GetAdmin retrieves the admin record behind an authenticated session.
func (s *AuthService) GetAdmin(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// PortalProfile resolves the person record behind a portal session.
func (s *AuthService) PortalProfile(ctx context.Context, role model.PortalRole, personID int) (interface{}, error) {
	switch role {
	case model.PortalRoleStudent:
		return s.studentRepo.GetByID(ctx, personID)
	case model.PortalRoleTeacher:
		return s.teacherRepo.GetByID(ctx, personID)
	case model.PortalRoleParent:
		return s.parentRepo.GetByID(ctx, personID)
	}
	return nil, ErrUnknownRegistryNo
}

// GetRecoveryQuestions returns the security questions registered for a
// username, without their answers.
func (s *AuthService) GetRecoveryQuestions(ctx context.Context, username string) ([]model.SecurityQuestion, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.adminRepo.GetSecurityQuestions(ctx, admin.ID)
}

// RecoverAdmin resets an admin password after verifying all three security
// answers. Attempts are rate limited per username in Redis.
func (s *AuthService) RecoverAdmin(ctx context.Context, req *model.AdminRecoverRequest) error {
	attemptsKey := config.CacheKey.RecoveryAttemptsKey(req.Username)
	attempts, err := s.rdb.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return fmt.Errorf("count recovery attempts: %w", err)
	}
	if attempts == 1 {
		s.rdb.Expire(ctx, attemptsKey, 15*time.Minute)
	}
	if attempts > 5 {
		return ErrRecoveryFailed
	}

	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRecoveryFailed
		}
		return err
	}

	questions, err := s.adminRepo.GetSecurityQuestions(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(questions) != len(req.Answers) {
		return ErrRecoveryFailed
	}
	for i, q := range questions {
		if bcrypt.CompareHashAndPassword([]byte(q.AnswerHash), []byte(normalizeAnswer(req.Answers[i]))) != nil {
			return ErrRecoveryFailed
		}
	}

	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.adminRepo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return err
	}
	s.rdb.Del(ctx, attemptsKey)
	return nil
}

// ChangeAdminPassword verifies the current password and stores a new one.
func (s *AuthService) ChangeAdminPassword(ctx context.Context, adminID int, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if err := s.CheckPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.adminRepo.UpdatePassword(ctx, admin.ID, hash)
}

// lookupPerson resolves a registry number to the person ID behind a portal
// role.
func (s *AuthService) lookupPerson(ctx context.Context, role model.PortalRole, registryNo string) (int, string, error) {
	switch role {
	case model.PortalRoleStudent:
		st, err := s.studentRepo.GetByRegistryNo(ctx, registryNo)
		if err != nil {
			return 0, "", err
		}
		return st.ID, st.Name, nil
	case model.PortalRoleTeacher:
		t, err := s.teacherRepo.GetByRegistryNo(ctx, registryNo)
		if err != nil {
			return 0, "", err
		}
		return t.ID, t.Name, nil
	case model.PortalRoleParent:
		p, err := s.parentRepo.GetByRegistryNo(ctx, registryNo)
		if err != nil {
			return 0, "", err
		}
		return p.ID, p.Name, nil
	}
	return 0, "", ErrUnknownRegistryNo
}

// RegisterPortalAccount creates a login for an existing registry record.
func (s *AuthService) RegisterPortalAccount(ctx context.Context, req *model.PortalRegisterRequest) (*model.PortalAccount, error) {
	personID, _, err := s.lookupPerson(ctx, req.Role, req.RegistryNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownRegistryNo
		}
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &model.PortalAccount{
		Role:         req.Role,
		PersonID:     personID,
		RegistryNo:   req.RegistryNo,
		PasswordHash: hash,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, ErrAccountExists
		}
		return nil, err
	}
	return account, nil
}

// CreatePortalAccount creates a portal login without the password policy
// check, used by admin flows that assign temporary passwords.
func (s *AuthService) CreatePortalAccount(ctx context.Context, role model.PortalRole, personID int, registryNo, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	return s.accountRepo.Create(ctx, &model.PortalAccount{
		Role:         role,
		PersonID:     personID,
		RegistryNo:   registryNo,
		PasswordHash: hash,
	})
}

// PortalLogin authenticates a portal user and registers a single-device
// session. A second login is rejected while a session is active.
func (s *AuthService) PortalLogin(ctx context.Context, req *model.PortalLoginRequest) (*model.PortalLoginResponse, error) {
	account, err := s.accountRepo.GetByRegistryNo(ctx, req.Role, req.RegistryNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(account.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	_, name, err := s.lookupPerson(ctx, account.Role, account.RegistryNo)
	if err != nil {
		return nil, err
	}

	sessionKey := config.CacheKey.PortalSessionKey(string(account.Role), account.PersonID)
	existing, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if existing != "" {
		return nil, ErrSessionAlreadyActive
	}

	jti := uuid.New().String()
	token, err := s.generateTokenWithJTI(Claims{
		TokenType:  TokenTypePortal,
		UserID:     account.PersonID,
		PortalRole: account.Role,
	}, jti)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &model.PortalLoginResponse{Token: token, Account: *account, Name: name}, nil
}

// PortalLogout drops the caller's active session.
func (s *AuthService) PortalLogout(ctx context.Context, role model.PortalRole, personID int) error {
	return s.ResetPortalSession(ctx, role, personID)
}

// ChangePortalPassword verifies the current password and stores a new one.
func (s *AuthService) ChangePortalPassword(ctx context.Context, role model.PortalRole, personID int, oldPassword, newPassword string) error {
	account, err := s.accountRepo.GetByPerson(ctx, role, personID)
	if err != nil {
		return err
	}
	if err := s.CheckPassword(account.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.accountRepo.UpdatePassword(ctx, account.ID, hash)
}

// ValidatePortalSession checks that the token's JTI matches the active
// session in Redis.
func (s *AuthService) ValidatePortalSession(ctx context.Context, role model.PortalRole, personID int, jti string) error {
	sessionKey := config.CacheKey.PortalSessionKey(string(role), personID)
	stored, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errors.New("no active session")
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return errors.New("session invalidated")
	}
	return nil
}

// ResetPortalSession removes a portal user's session from Redis, allowing
// a new login.
func (s *AuthService) ResetPortalSession(ctx context.Context, role model.PortalRole, personID int) error {
	return s.rdb.Del(ctx, config.CacheKey.PortalSessionKey(string(role), personID)).Err()
}

func (s *AuthService) generateToken(claims Claims) (string, error) {
	return s.generateTokenWithJTI(claims, uuid.New().String())
}

func (s *AuthService) generateTokenWithJTI(claims Claims, jti string) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        jti,
		Subject:   strconv.Itoa(claims.UserID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
