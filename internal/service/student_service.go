package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/validator"
)

// Common student errors.
var (
	ErrSectionNotFound = errors.New("section not found")
	ErrNotEnrolled     = errors.New("student is not enrolled in this subject")
	ErrExemptUnchanged = errors.New("exempt flag already has this value")
)

// StudentService handles student records, enrollments and grades.
type StudentService struct {
	studentRepo    *repository.StudentRepository
	enrollmentRepo *repository.EnrollmentRepository
	courseRepo     *repository.CourseRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo *repository.StudentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByRegistryNo retrieves a student by registry number.
func (s *StudentService) GetByRegistryNo(ctx context.Context, registryNo string) (*model.Student, error) {
	return s.studentRepo.GetByRegistryNo(ctx, registryNo)
}

// resolveSection turns a COURSE-YEAR-NUMBER key into a section row.
func (s *StudentService) resolveSection(ctx context.Context, key string) (*model.Section, error) {
	course, year, number, err := validator.SplitSectionKey(key)
	if err != nil {
		return nil, ErrSectionNotFound
	}
	section, err := s.courseRepo.GetSectionByKey(ctx, course, year, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}

// ListStudents retrieves students with pagination and optional filters.
func (s *StudentService) ListStudents(ctx context.Context, sectionKey string, status *model.EnrollmentStatus, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	var sectionID *int
	if sectionKey != "" {
		section, err := s.resolveSection(ctx, sectionKey)
		if err != nil {
			return nil, nil, err
		}
		sectionID = &section.ID
	}

	students, total, err := s.studentRepo.ListPaginated(ctx, sectionID, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return students, pagination, nil
}

// ListBySection retrieves a section's roster.
func (s *StudentService) ListBySection(ctx context.Context, sectionKey string) ([]model.Student, *model.Section, error) {
	section, err := s.resolveSection(ctx, sectionKey)
	if err != nil {
		return nil, nil, err
	}
	students, err := s.studentRepo.ListBySection(ctx, section.ID)
	if err != nil {
		return nil, nil, err
	}
	return students, section, nil
}

// Create registers a student into a section and auto-enrolls them in the
// section's subjects.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	section, err := s.resolveSection(ctx, req.Section)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:      req.Name,
		Contact:   req.Contact,
		SectionID: section.ID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	student.SectionKey = section.Key()

	for _, subject := range section.Subjects {
		e := &model.Enrollment{StudentID: student.ID, Subject: subject}
		if err := s.enrollmentRepo.Create(ctx, e); err != nil && !errors.Is(err, repository.ErrDuplicateEnrollment) {
			return nil, err
		}
	}
	return student, nil
}

// Update modifies a student record. Empty request fields keep the stored
// values.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		student.Name = req.Name
	}
	if req.Contact != "" {
		student.Contact = req.Contact
	}
	if req.Status != "" {
		student.Status = req.Status
	}
	if req.Section != "" {
		section, err := s.resolveSection(ctx, req.Section)
		if err != nil {
			return nil, err
		}
		student.SectionID = section.ID
		student.SectionKey = section.Key()
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student and all dependent records.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, id)
}

// Enroll adds a subject to a student's load.
func (s *StudentService) Enroll(ctx context.Context, studentID int, subject string) (*model.Enrollment, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	e := &model.Enrollment{StudentID: studentID, Subject: subject}
	if err := s.enrollmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Unenroll drops a subject; its records cascade away.
func (s *StudentService) Unenroll(ctx context.Context, studentID int, subject string) error {
	e, err := s.getEnrollment(ctx, studentID, subject)
	if err != nil {
		return err
	}
	return s.enrollmentRepo.Delete(ctx, e.ID)
}

func (s *StudentService) getEnrollment(ctx context.Context, studentID int, subject string) (*model.Enrollment, error) {
	e, err := s.enrollmentRepo.Get(ctx, studentID, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return e, nil
}

// SetExempt marks a subject exempt (or clears the flag). Exempt subjects
// keep their records but are excluded from GPA.
func (s *StudentService) SetExempt(ctx context.Context, studentID int, subject string, exempt bool) error {
	e, err := s.getEnrollment(ctx, studentID, subject)
	if err != nil {
		return err
	}
	if e.Exempt == exempt {
		return ErrExemptUnchanged
	}
	_, err = s.enrollmentRepo.SetExempt(ctx, e.ID, exempt)
	return err
}

// MarkAttendance records an attendance mark; re-marking a date replaces it.
func (s *StudentService) MarkAttendance(ctx context.Context, studentID int, req *model.MarkAttendanceRequest) (*model.AttendanceRecord, error) {
	e, err := s.getEnrollment(ctx, studentID, req.Subject)
	if err != nil {
		return nil, err
	}
	rec := &model.AttendanceRecord{EnrollmentID: e.ID, Date: req.Date, Status: req.Status}
	if err := s.enrollmentRepo.MarkAttendance(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordExam upserts a term exam score.
func (s *StudentService) RecordExam(ctx context.Context, studentID int, req *model.RecordExamRequest) (*model.ExamScore, error) {
	e, err := s.getEnrollment(ctx, studentID, req.Subject)
	if err != nil {
		return nil, err
	}
	score := &model.ExamScore{EnrollmentID: e.ID, Type: req.Type, Score: req.Score}
	if err := s.enrollmentRepo.RecordExam(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

// AddActivity appends a graded activity; the score is derived from the
// raw result.
func (s *StudentService) AddActivity(ctx context.Context, studentID int, req *model.AddActivityRequest) (*model.Activity, error) {
	if req.CorrectAnswers > req.TotalItems {
		return nil, errors.New("correct answers exceed total items")
	}
	e, err := s.getEnrollment(ctx, studentID, req.Subject)
	if err != nil {
		return nil, err
	}
	a := &model.Activity{
		EnrollmentID:   e.ID,
		TotalItems:     req.TotalItems,
		CorrectAnswers: req.CorrectAnswers,
		Score:          ActivityScore(req.CorrectAnswers, req.TotalItems),
	}
	if err := s.enrollmentRepo.AddActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetGrades computes the per-subject standing of a student.
func (s *StudentService) GetGrades(ctx context.Context, studentID int) ([]model.SubjectGradeView, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	grades := make([]model.SubjectGradeView, 0, len(enrollments))
	for _, e := range enrollments {
		activities, err := s.enrollmentRepo.ListActivities(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		exams, err := s.enrollmentRepo.GetExamScores(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		attendance, err := s.enrollmentRepo.GetAttendanceSummary(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if activities == nil {
			activities = []model.Activity{}
		}

		grades = append(grades, model.SubjectGradeView{
			Subject:    e.Subject,
			Exempt:     e.Exempt,
			Grade:      SubjectGrade(activities, exams, attendance),
			ExamScores: exams,
			Activities: activities,
			Attendance: attendance,
		})
	}
	return grades, nil
}

// GetGPA computes a student's GPA over non-exempt subjects. The bool is
// false when the student has no gradable subjects.
func (s *StudentService) GetGPA(ctx context.Context, studentID int) (float64, bool, error) {
	grades, err := s.GetGrades(ctx, studentID)
	if err != nil {
		return 0, false, err
	}
	gpa, ok := GPA(grades)
	return gpa, ok, nil
}

// GetAttendanceSummary aggregates a student's attendance per subject.
func (s *StudentService) GetAttendanceSummary(ctx context.Context, studentID int) (map[string]model.AttendanceSummary, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]model.AttendanceSummary, len(enrollments))
	for _, e := range enrollments {
		a, err := s.enrollmentRepo.GetAttendanceSummary(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		summary[e.Subject] = a
	}
	return summary, nil
}
