package service

import (
	"context"
	"errors"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// ErrRecordNotOpen is returned when resolving a record that is missing or
// already resolved.
var ErrRecordNotOpen = errors.New("discipline record is not open")

// DisciplineService handles behavioural records.
type DisciplineService struct {
	disciplineRepo *repository.DisciplineRepository
	studentRepo    *repository.StudentRepository
}

// NewDisciplineService creates a new DisciplineService.
func NewDisciplineService(disciplineRepo *repository.DisciplineRepository, studentRepo *repository.StudentRepository) *DisciplineService {
	return &DisciplineService{disciplineRepo: disciplineRepo, studentRepo: studentRepo}
}

// Create records a discipline entry or commendation. Commendations carry
// no severity.
func (s *DisciplineService) Create(ctx context.Context, req *model.CreateDisciplineRequest) (*model.DisciplineRecord, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	severity := req.Severity
	if req.ActionType == model.ActionCommendation {
		severity = ""
	}
	d := &model.DisciplineRecord{
		StudentID:   req.StudentID,
		ActionType:  req.ActionType,
		Severity:    severity,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := s.disciplineRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByStudent retrieves a student's behavioural file.
func (s *DisciplineService) ListByStudent(ctx context.Context, studentID int) ([]model.DisciplineRecord, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.disciplineRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.DisciplineRecord{}
	}
	return records, nil
}

// Resolve closes an open record with notes.
func (s *DisciplineService) Resolve(ctx context.Context, id int, notes string) error {
	resolved, err := s.disciplineRepo.Resolve(ctx, id, notes)
	if err != nil {
		return err
	}
	if !resolved {
		return ErrRecordNotOpen
	}
	return nil
}
