package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrDuplicateSectionAssignment = errors.New("teacher is already assigned to this section")

// TeacherRepository handles faculty data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

func (r *TeacherRepository) scanOne(ctx context.Context, query string, arg interface{}) (*model.Teacher, error) {
	t := &model.Teacher{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.RegistryNo, &t.Name, &t.Email, &t.Phone,
		&t.Qualifications, &t.Subjects, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sections, err := r.GetSections(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Sections = sections
	return t, nil
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return r.scanOne(ctx,
		`SELECT id, registry_no, name, email, phone, qualifications, subjects, created_at, updated_at
		 FROM teachers WHERE id = $1`, id)
}

// GetByRegistryNo retrieves a teacher by their unique registry number.
func (r *TeacherRepository) GetByRegistryNo(ctx context.Context, registryNo string) (*model.Teacher, error) {
	return r.scanOne(ctx,
		`SELECT id, registry_no, name, email, phone, qualifications, subjects, created_at, updated_at
		 FROM teachers WHERE registry_no = $1`, registryNo)
}

// ListPaginated retrieves teachers with pagination.
func (r *TeacherRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Teacher, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, registry_no, name, email, phone, qualifications, subjects, created_at, updated_at
		 FROM teachers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.RegistryNo, &t.Name, &t.Email, &t.Phone,
			&t.Qualifications, &t.Subjects, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range teachers {
		sections, err := r.GetSections(ctx, teachers[i].ID)
		if err != nil {
			return nil, 0, err
		}
		teachers[i].Sections = sections
	}
	return teachers, total, nil
}

// Create inserts a new teacher. The registry number is assigned from the
// teacher sequence inside the insert.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teachers (registry_no, name, email, phone)
		 VALUES ($1 || lpad(nextval('teacher_registry_seq')::text, 7, '0'), $2, $3, $4)
		 RETURNING id, registry_no, qualifications, subjects, created_at, updated_at`,
		model.RegistryPrefixTeacher, t.Name, t.Email, t.Phone,
	).Scan(&t.ID, &t.RegistryNo, &t.Qualifications, &t.Subjects, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies a teacher's basic info.
func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers SET name = $1, email = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		t.Name, t.Email, t.Phone, t.ID,
	)
	return err
}

// Delete removes a teacher; schedules and leave requests cascade.
func (r *TeacherRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	return err
}

// AddQualification appends a qualification unless already present.
func (r *TeacherRepository) AddQualification(ctx context.Context, id int, qualification string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers
		 SET qualifications = array_append(qualifications, $1), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND NOT ($1 = ANY(qualifications))`,
		qualification, id,
	)
	return err
}

// AddSubject appends a taught subject unless already present.
func (r *TeacherRepository) AddSubject(ctx context.Context, id int, subject string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers
		 SET subjects = array_append(subjects, $1), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND NOT ($1 = ANY(subjects))`,
		subject, id,
	)
	return err
}

// RemoveSubject drops a subject from the teaching load.
func (r *TeacherRepository) RemoveSubject(ctx context.Context, id int, subject string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers
		 SET subjects = array_remove(subjects, $1), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2`,
		subject, id,
	)
	return err
}

// GetSections retrieves a teacher's assigned section keys.
func (r *TeacherRepository) GetSections(ctx context.Context, teacherID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section FROM teacher_sections WHERE teacher_id = $1 ORDER BY section`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []string
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// AssignSection assigns a teacher to a section.
func (r *TeacherRepository) AssignSection(ctx context.Context, teacherID int, section string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO teacher_sections (teacher_id, section) VALUES ($1, $2)`,
		teacherID, section,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSectionAssignment
		}
		return err
	}
	return nil
}

// UnassignSection removes a teacher's section assignment. Returns false
// when no assignment existed.
func (r *TeacherRepository) UnassignSection(ctx context.Context, teacherID int, section string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM teacher_sections WHERE teacher_id = $1 AND section = $2`,
		teacherID, section,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IsAssignedTo reports whether a teacher is assigned to a section.
func (r *TeacherRepository) IsAssignedTo(ctx context.Context, teacherID int, section string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM teacher_sections WHERE teacher_id = $1 AND section = $2)`,
		teacherID, section,
	).Scan(&exists)
	return exists, err
}
