package service

import (
	"context"
	"errors"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// ErrExamScheduleNotFound is returned when an announcement does not exist.
var ErrExamScheduleNotFound = errors.New("exam schedule not found")

// ExamScheduleService handles exam announcements per section.
type ExamScheduleService struct {
	examScheduleRepo *repository.ExamScheduleRepository
	courseService    *CourseService
}

// NewExamScheduleService creates a new ExamScheduleService.
func NewExamScheduleService(examScheduleRepo *repository.ExamScheduleRepository, courseService *CourseService) *ExamScheduleService {
	return &ExamScheduleService{examScheduleRepo: examScheduleRepo, courseService: courseService}
}

// Create schedules an exam for a section after validating the time range.
func (s *ExamScheduleService) Create(ctx context.Context, req *model.CreateExamScheduleRequest) (*model.ExamSchedule, error) {
	if _, err := s.courseService.GetSection(ctx, req.Section); err != nil {
		return nil, err
	}
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	e := &model.ExamSchedule{
		Section:   req.Section,
		Subject:   req.Subject,
		Type:      req.Type,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}
	if err := s.examScheduleRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update reschedules an announcement after validating the time range.
func (s *ExamScheduleService) Update(ctx context.Context, id int, req *model.UpdateExamScheduleRequest) (*model.ExamSchedule, error) {
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	e, err := s.examScheduleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Subject = req.Subject
	e.Type = req.Type
	e.Date = req.Date
	e.StartTime = req.StartTime
	e.EndTime = req.EndTime
	e.Room = req.Room

	updated, err := s.examScheduleRepo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrExamScheduleNotFound
	}
	return e, nil
}

// ListBySection retrieves a section's exam schedule.
func (s *ExamScheduleService) ListBySection(ctx context.Context, section string) ([]model.ExamSchedule, error) {
	schedules, err := s.examScheduleRepo.ListBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []model.ExamSchedule{}
	}
	return schedules, nil
}

// Delete removes an announcement.
func (s *ExamScheduleService) Delete(ctx context.Context, id int) error {
	removed, err := s.examScheduleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrExamScheduleNotFound
	}
	return nil
}
