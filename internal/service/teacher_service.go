package service

import (
	"context"
	"errors"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
)

// Common teacher errors.
var (
	ErrScheduleConflict = errors.New("schedule overlaps an existing slot")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrLeaveNotPending  = errors.New("leave request is not pending")
	ErrNotOwnSection    = errors.New("teacher is not assigned to this section")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// TeacherService handles faculty records, timetables and leave requests.
type TeacherService struct {
	teacherRepo  *repository.TeacherRepository
	scheduleRepo *repository.ScheduleRepository
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository, scheduleRepo *repository.ScheduleRepository) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo, scheduleRepo: scheduleRepo}
}

// GetByID retrieves a teacher by ID.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// ListTeachers retrieves teachers with pagination.
func (s *TeacherService) ListTeachers(ctx context.Context, page, perPage int) ([]model.Teacher, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	teachers, total, err := s.teacherRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if teachers == nil {
		teachers = []model.Teacher{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return teachers, pagination, nil
}

// Create registers a faculty member.
func (s *TeacherService) Create(ctx context.Context, req *model.CreateTeacherRequest) (*model.Teacher, error) {
	t := &model.Teacher{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := s.teacherRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update modifies a teacher record. Empty fields keep the stored values.
func (s *TeacherService) Update(ctx context.Context, id int, req *model.UpdateTeacherRequest) (*model.Teacher, error) {
	t, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Email != "" {
		t.Email = req.Email
	}
	if req.Phone != "" {
		t.Phone = req.Phone
	}
	if err := s.teacherRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a teacher and cascades schedules and leave requests.
func (s *TeacherService) Delete(ctx context.Context, id int) error {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teacherRepo.Delete(ctx, id)
}

// AddQualification appends a qualification.
func (s *TeacherService) AddQualification(ctx context.Context, id int, qualification string) error {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teacherRepo.AddQualification(ctx, id, qualification)
}

// AddSubject appends a subject to the teaching load.
func (s *TeacherService) AddSubject(ctx context.Context, id int, subject string) error {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teacherRepo.AddSubject(ctx, id, subject)
}

// RemoveSubject drops a subject from the teaching load.
func (s *TeacherService) RemoveSubject(ctx context.Context, id int, subject string) error {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teacherRepo.RemoveSubject(ctx, id, subject)
}

// AssignSection assigns a teacher to a section.
func (s *TeacherService) AssignSection(ctx context.Context, id int, section string) error {
	if _, err := s.teacherRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teacherRepo.AssignSection(ctx, id, section)
}

// UnassignSection removes a section assignment.
func (s *TeacherService) UnassignSection(ctx context.Context, id int, section string) error {
	removed, err := s.teacherRepo.UnassignSection(ctx, id, section)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotOwnSection
	}
	return nil
}

// IsAssignedTo reports whether a teacher covers a section.
func (s *TeacherService) IsAssignedTo(ctx context.Context, teacherID int, section string) (bool, error) {
	return s.teacherRepo.IsAssignedTo(ctx, teacherID, section)
}

// GetSchedules retrieves a teacher's weekly timetable.
func (s *TeacherService) GetSchedules(ctx context.Context, teacherID int) ([]model.Schedule, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}
	schedules, err := s.scheduleRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	return schedules, nil
}

// GetSectionSchedules retrieves every slot scheduled for a section.
func (s *TeacherService) GetSectionSchedules(ctx context.Context, section string) ([]model.Schedule, error) {
	schedules, err := s.scheduleRepo.ListBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	return schedules, nil
}

// AddSchedule adds a timetable slot after validating the time range and
// checking the teacher's whole week for collisions across all sections.
func (s *TeacherService) AddSchedule(ctx context.Context, teacherID int, req *model.AddScheduleRequest) (*model.Schedule, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}

	slot := model.Schedule{
		TeacherID: teacherID,
		Section:   req.Section,
		Subject:   req.Subject,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}
	// Binding enforces the HH:MM format, so string order matches clock order.
	if !model.ValidClock(slot.StartTime) || !model.ValidClock(slot.EndTime) || slot.StartTime >= slot.EndTime {
		return nil, ErrInvalidTimeRange
	}

	existing, err := s.scheduleRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if slot.OverlapsWith(other) {
			return nil, ErrScheduleConflict
		}
	}

	if err := s.scheduleRepo.Create(ctx, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// RemoveSchedule deletes a timetable slot.
func (s *TeacherService) RemoveSchedule(ctx context.Context, teacherID, scheduleID int) error {
	removed, err := s.scheduleRepo.Delete(ctx, teacherID, scheduleID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrScheduleNotFound
	}
	return nil
}

// SubmitLeave files a pending leave request for a teacher.
func (s *TeacherService) SubmitLeave(ctx context.Context, teacherID int, req *model.SubmitLeaveRequest) (*model.LeaveRequest, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}
	if req.DateTo < req.DateFrom {
		return nil, ErrInvalidTimeRange
	}
	l := &model.LeaveRequest{
		TeacherID: teacherID,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Reason:    req.Reason,
	}
	if err := s.scheduleRepo.CreateLeave(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLeaves retrieves leave requests, optionally filtered.
func (s *TeacherService) ListLeaves(ctx context.Context, teacherID *int, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	leaves, err := s.scheduleRepo.ListLeaves(ctx, teacherID, status)
	if err != nil {
		return nil, err
	}
	if leaves == nil {
		leaves = []model.LeaveRequest{}
	}
	return leaves, nil
}

// ReviewLeave approves or rejects a pending leave request.
func (s *TeacherService) ReviewLeave(ctx context.Context, leaveID int, status model.LeaveStatus) (*model.LeaveRequest, error) {
	updated, err := s.scheduleRepo.SetLeaveStatus(ctx, leaveID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrLeaveNotPending
	}
	return s.scheduleRepo.GetLeave(ctx, leaveID)
}
