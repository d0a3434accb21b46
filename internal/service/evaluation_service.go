package service

import (
	"context"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// EvaluationService handles faculty evaluation business logic.
type EvaluationService struct {
	evaluationRepo *repository.EvaluationRepository
	teacherRepo    *repository.TeacherRepository
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(evaluationRepo *repository.EvaluationRepository, teacherRepo *repository.TeacherRepository) *EvaluationService {
	return &EvaluationService{evaluationRepo: evaluationRepo, teacherRepo: teacherRepo}
}

// Submit records a student's rating of a teacher.
func (s *EvaluationService) Submit(ctx context.Context, studentID int, req *model.SubmitEvaluationRequest) (*model.Evaluation, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	e := &model.Evaluation{
		StudentID: studentID,
		TeacherID: req.TeacherID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.evaluationRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListForTeacher retrieves a teacher's evaluations with the aggregate
// summary.
func (s *EvaluationService) ListForTeacher(ctx context.Context, teacherID int) ([]model.Evaluation, *model.EvaluationSummary, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, nil, err
	}
	evaluations, err := s.evaluationRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, nil, err
	}
	if evaluations == nil {
		evaluations = []model.Evaluation{}
	}
	summary, err := s.evaluationRepo.GetSummary(ctx, teacherID)
	if err != nil {
		return nil, nil, err
	}
	return evaluations, summary, nil
}
