package service

import (
	"context"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// SnapshotService archives end-of-term academic standings. Snapshots are
// immutable once captured.
type SnapshotService struct {
	snapshotRepo   *repository.SnapshotRepository
	studentService *StudentService
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(snapshotRepo *repository.SnapshotRepository, studentService *StudentService) *SnapshotService {
	return &SnapshotService{snapshotRepo: snapshotRepo, studentService: studentService}
}

// CaptureSection archives the current term for every student of a
// section. Returns the snapshots written.
func (s *SnapshotService) CaptureSection(ctx context.Context, req *model.CaptureSnapshotRequest) ([]model.AcademicSnapshot, error) {
	students, section, err := s.studentService.ListBySection(ctx, req.Section)
	if err != nil {
		return nil, err
	}

	snapshots := make([]model.AcademicSnapshot, 0, len(students))
	for _, student := range students {
		grades, err := s.studentService.GetGrades(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		gpa, _ := GPA(grades)

		subjects := make(map[string]model.SubjectSnapshot, len(grades))
		for _, g := range grades {
			subjects[g.Subject] = model.SubjectSnapshot{
				Grade:      g.Grade,
				Exempt:     g.Exempt,
				ExamScores: g.ExamScores,
				Activities: len(g.Activities),
				Attendance: g.Attendance,
			}
		}

		snapshot := model.AcademicSnapshot{
			StudentID: student.ID,
			Semester:  req.Semester,
			Section:   section.Key(),
			GPA:       gpa,
			Subjects:  subjects,
		}
		if err := s.snapshotRepo.Create(ctx, &snapshot); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// History retrieves a student's archived terms.
func (s *SnapshotService) History(ctx context.Context, studentID int) ([]model.AcademicSnapshot, error) {
	if _, err := s.studentService.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if snapshots == nil {
		snapshots = []model.AcademicSnapshot{}
	}
	return snapshots, nil
}
