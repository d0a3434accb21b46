package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var (
	ErrDuplicateCourse   = errors.New("course with this code already exists")
	ErrCourseHasSections = errors.New("course still has sections")
)

// CourseRepository handles course and section data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetCourseByCode retrieves a course by its unique code.
func (r *CourseRepository) GetCourseByCode(ctx context.Context, code string) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, description, created_at, updated_at FROM courses WHERE code = $1`, code,
	).Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCourses retrieves all courses ordered by code.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, description, created_at, updated_at FROM courses ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// CreateCourse inserts a new course.
func (r *CourseRepository) CreateCourse(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (code, name, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Code, c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourse
		}
		return err
	}
	return nil
}

// DeleteCourse removes a course. Fails while sections reference it.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrCourseHasSections
		}
		return err
	}
	return nil
}

// CreateSection adds the next numbered section to a course year.
func (r *CourseRepository) CreateSection(ctx context.Context, courseID int, year int) (*model.Section, error) {
	s := &model.Section{CourseID: courseID, Year: year}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sections (course_id, year, number)
		 VALUES ($1, $2, (SELECT COALESCE(MAX(number), 0) + 1 FROM sections WHERE course_id = $1 AND year = $2))
		 RETURNING id, number, created_at`,
		courseID, year,
	).Scan(&s.ID, &s.Number, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSectionByKey resolves a COURSE-YEAR-NUMBER key to a section.
func (r *CourseRepository) GetSectionByKey(ctx context.Context, courseCode string, year, number int) (*model.Section, error) {
	s := &model.Section{Year: year, Number: number, CourseCode: courseCode}
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.course_id, s.created_at
		 FROM sections s JOIN courses c ON c.id = s.course_id
		 WHERE c.code = $1 AND s.year = $2 AND s.number = $3`,
		courseCode, year, number,
	).Scan(&s.ID, &s.CourseID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	subjects, err := r.GetSectionSubjects(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Subjects = subjects
	return s, nil
}

// GetSectionByID retrieves a section with its course code and subjects.
func (r *CourseRepository) GetSectionByID(ctx context.Context, id int) (*model.Section, error) {
	s := &model.Section{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT s.course_id, c.code, s.year, s.number, s.created_at
		 FROM sections s JOIN courses c ON c.id = s.course_id
		 WHERE s.id = $1`, id,
	).Scan(&s.CourseID, &s.CourseCode, &s.Year, &s.Number, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	subjects, err := r.GetSectionSubjects(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Subjects = subjects
	return s, nil
}

// ListSections retrieves all sections of a course, or of every course when
// courseID is nil.
func (r *CourseRepository) ListSections(ctx context.Context, courseID *int) ([]model.Section, error) {
	query := `SELECT s.id, s.course_id, c.code, s.year, s.number, s.created_at
	          FROM sections s JOIN courses c ON c.id = s.course_id`
	var args []interface{}
	if courseID != nil {
		query += ` WHERE s.course_id = $1`
		args = append(args, *courseID)
	}
	query += ` ORDER BY c.code, s.year, s.number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.CourseCode, &s.Year, &s.Number, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// GetSectionSubjects retrieves a section's subject list.
func (r *CourseRepository) GetSectionSubjects(ctx context.Context, sectionID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject FROM section_subjects WHERE section_id = $1 ORDER BY subject`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// AddSubjectToSection attaches a subject to one section. Adding an already
// attached subject is a no-op.
func (r *CourseRepository) AddSubjectToSection(ctx context.Context, sectionID int, subject string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO section_subjects (section_id, subject) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		sectionID, subject,
	)
	return err
}

// AddSubjectToYear attaches a subject to every section of a course year.
// Returns the number of sections touched.
func (r *CourseRepository) AddSubjectToYear(ctx context.Context, courseID, year int, subject string) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO section_subjects (section_id, subject)
		 SELECT id, $3 FROM sections WHERE course_id = $1 AND year = $2
		 ON CONFLICT DO NOTHING`,
		courseID, year, subject,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
