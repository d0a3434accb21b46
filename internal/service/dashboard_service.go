package service

import (
	"context"

	"github.com/campushq/campus-backend/internal/repository"
)

// DashboardSummary aggregates headline figures for the admin dashboard.
type DashboardSummary struct {
	TotalStudents        int            `json:"total_students"`
	TotalTeachers        int            `json:"total_teachers"`
	TotalParents         int            `json:"total_parents"`
	TotalCourses         int            `json:"total_courses"`
	TotalSections        int            `json:"total_sections"`
	StudentsByStatus     map[string]int `json:"students_by_status"`
	PendingLeaveRequests int            `json:"pending_leave_requests"`
}

// DashboardService handles admin dashboard aggregation.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary assembles the dashboard payload.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	students, teachers, parents, courses, sections, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.dashboardRepo.GetStudentStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	pendingLeaves, err := s.dashboardRepo.GetPendingLeaveCount(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		TotalStudents:        students,
		TotalTeachers:        teachers,
		TotalParents:         parents,
		TotalCourses:         courses,
		TotalSections:        sections,
		StudentsByStatus:     byStatus,
		PendingLeaveRequests: pendingLeaves,
	}, nil
}
