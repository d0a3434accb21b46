package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/validator"
)

// CourseService handles course and section business logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// ListCourses retrieves all courses.
func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// CreateCourse registers a degree program.
func (s *CourseService) CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{Code: req.Code, Name: req.Name, Description: req.Description}
	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course without sections.
func (s *CourseService) DeleteCourse(ctx context.Context, code string) error {
	course, err := s.courseRepo.GetCourseByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.courseRepo.DeleteCourse(ctx, course.ID)
}

// CreateSection opens the next numbered section of a course year.
func (s *CourseService) CreateSection(ctx context.Context, req *model.CreateSectionRequest) (*model.Section, error) {
	course, err := s.courseRepo.GetCourseByCode(ctx, req.CourseCode)
	if err != nil {
		return nil, err
	}
	section, err := s.courseRepo.CreateSection(ctx, course.ID, req.Year)
	if err != nil {
		return nil, err
	}
	section.CourseCode = course.Code
	return section, nil
}

// ListSections retrieves sections, optionally scoped to one course.
func (s *CourseService) ListSections(ctx context.Context, courseCode string) ([]model.Section, error) {
	var courseID *int
	if courseCode != "" {
		course, err := s.courseRepo.GetCourseByCode(ctx, courseCode)
		if err != nil {
			return nil, err
		}
		courseID = &course.ID
	}
	sections, err := s.courseRepo.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []model.Section{}
	}
	return sections, nil
}

// GetSection resolves a section key and returns the section with its
// subject list.
func (s *CourseService) GetSection(ctx context.Context, key string) (*model.Section, error) {
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
	section.CourseCode = course
	return section, nil
}

// AddSubject attaches a subject to one section, or to every section of
// the course year when the section number is zero. Returns the number of
// sections touched.
func (s *CourseService) AddSubject(ctx context.Context, req *model.AddSubjectRequest) (int, error) {
	course, err := s.courseRepo.GetCourseByCode(ctx, req.CourseCode)
	if err != nil {
		return 0, err
	}

	if req.SectionNumber == 0 {
		return s.courseRepo.AddSubjectToYear(ctx, course.ID, req.Year, req.Subject)
	}

	section, err := s.courseRepo.GetSectionByKey(ctx, course.Code, req.Year, req.SectionNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrSectionNotFound
		}
		return 0, err
	}
	if err := s.courseRepo.AddSubjectToSection(ctx, section.ID, req.Subject); err != nil {
		return 0, err
	}
	return 1, nil
}
