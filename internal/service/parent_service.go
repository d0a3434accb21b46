package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
)

// ErrNotLinkedChild is returned when a parent asks about a student that is
// not linked to them.
var ErrNotLinkedChild = errors.New("student is not linked to this parent")

// ParentService handles parent/guardian records and their student links.
type ParentService struct {
	parentRepo  *repository.ParentRepository
	studentRepo *repository.StudentRepository
	authService *AuthService
}

// NewParentService creates a new ParentService.
func NewParentService(parentRepo *repository.ParentRepository, studentRepo *repository.StudentRepository, authService *AuthService) *ParentService {
	return &ParentService{parentRepo: parentRepo, studentRepo: studentRepo, authService: authService}
}

// GetByID retrieves a parent by ID.
func (s *ParentService) GetByID(ctx context.Context, id int) (*model.Parent, error) {
	return s.parentRepo.GetByID(ctx, id)
}

// GetByStudent retrieves the parent linked to a student.
func (s *ParentService) GetByStudent(ctx context.Context, studentID int) (*model.Parent, error) {
	return s.parentRepo.GetByStudent(ctx, studentID)
}

// ListParents retrieves parents with pagination.
func (s *ParentService) ListParents(ctx context.Context, page, perPage int) ([]model.Parent, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	parents, total, err := s.parentRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if parents == nil {
		parents = []model.Parent{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return parents, pagination, nil
}

// Create registers a parent, links the given students and opens a portal
// account. When no password is supplied a temporary one is derived from
// the registry number; the parent should change it on first login.
func (s *ParentService) Create(ctx context.Context, req *model.CreateParentRequest) (*model.Parent, error) {
	for _, studentID := range req.StudentIDs {
		if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
			return nil, err
		}
	}

	p := &model.Parent{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := s.parentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	for _, studentID := range req.StudentIDs {
		if err := s.parentRepo.LinkStudent(ctx, p.ID, studentID); err != nil {
			return nil, err
		}
		p.StudentIDs = append(p.StudentIDs, studentID)
	}

	password := req.Password
	if password == "" {
		password = TempParentPassword(p.RegistryNo)
	}
	if err := s.authService.CreatePortalAccount(ctx, model.PortalRoleParent, p.ID, p.RegistryNo, password); err != nil {
		return nil, err
	}
	return p, nil
}

// TempParentPassword derives the first-login password handed to a parent
// when the admin did not choose one.
func TempParentPassword(registryNo string) string {
	suffix := registryNo
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "Parent@" + suffix
}

// Update modifies a parent record. Empty fields keep the stored values.
func (s *ParentService) Update(ctx context.Context, id int, req *model.UpdateParentRequest) (*model.Parent, error) {
	p, err := s.parentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Phone != "" {
		p.Phone = req.Phone
	}
	if err := s.parentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a parent, their links, notifications and portal account.
func (s *ParentService) Delete(ctx context.Context, id int) error {
	if _, err := s.parentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.parentRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.authService.ResetPortalSession(ctx, model.PortalRoleParent, id)
}

// LinkStudent links a student to a parent. A student may be linked to at
// most one parent.
func (s *ParentService) LinkStudent(ctx context.Context, parentID, studentID int) error {
	if _, err := s.parentRepo.GetByID(ctx, parentID); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}
	return s.parentRepo.LinkStudent(ctx, parentID, studentID)
}

// UnlinkStudent removes a parent-student link.
func (s *ParentService) UnlinkStudent(ctx context.Context, parentID, studentID int) error {
	removed, err := s.parentRepo.UnlinkStudent(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotLinkedChild
	}
	return nil
}

// RequireLink verifies that a student is linked to a parent.
func (s *ParentService) RequireLink(ctx context.Context, parentID, studentID int) error {
	linked, err := s.parentRepo.IsLinked(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !linked {
		return ErrNotLinkedChild
	}
	return nil
}

// Children retrieves the students linked to a parent.
func (s *ParentService) Children(ctx context.Context, parentID int) ([]model.Student, error) {
	p, err := s.parentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	children := make([]model.Student, 0, len(p.StudentIDs))
	for _, studentID := range p.StudentIDs {
		st, err := s.studentRepo.GetByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		children = append(children, *st)
	}
	return children, nil
}
