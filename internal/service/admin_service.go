package service

import (
	"context"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// AdminService manages administrator accounts and RBAC roles.
type AdminService struct {
	adminRepo   *repository.AdminRepository
	roleRepo    *repository.RoleRepository
	authService *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository, roleRepo *repository.RoleRepository, authService *AuthService) *AdminService {
	return &AdminService{adminRepo: adminRepo, roleRepo: roleRepo, authService: authService}
}

// ListAdmins retrieves every admin account.
func (s *AdminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return admins, nil
}

// CreateAdmin provisions an admin account with its recovery questions.
func (s *AdminService) CreateAdmin(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	if _, err := s.roleRepo.GetRoleByID(ctx, req.RoleID); err != nil {
		return nil, err
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{Username: req.Username, PasswordHash: hash, RoleID: req.RoleID}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	questions := make([]model.SecurityQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		answerHash, err := s.authService.HashAnswer(q.Answer)
		if err != nil {
			return nil, err
		}
		questions = append(questions, model.SecurityQuestion{Question: q.Question, AnswerHash: answerHash})
	}
	if err := s.adminRepo.SetSecurityQuestions(ctx, admin.ID, questions); err != nil {
		return nil, err
	}
	return admin, nil
}

// ListRoles retrieves every role with its permission codes.
func (s *AdminService) ListRoles(ctx context.Context) ([]model.RoleWithPermissions, error) {
	roles, err := s.roleRepo.ListRolesWithPermissions(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []model.RoleWithPermissions{}
	}
	return roles, nil
}

// CreateRole creates a role from a set of permission codes. Unknown codes
// are ignored by the insert, so the result reflects what actually bound.
func (s *AdminService) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	role, err := s.roleRepo.CreateRole(ctx, req.Name, req.Permissions)
	if err != nil {
		return nil, err
	}
	return s.roleRepo.GetRoleByID(ctx, role.ID)
}

// ListPermissions returns the full permission vocabulary.
func (s *AdminService) ListPermissions() []model.Permission {
	return model.AllPermissions
}
