package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `st.id, st.registry_no, st.name, st.contact, st.section_id,
	c.code || '-' || s.year || '-' || s.number, st.status, st.created_at, st.updated_at`

const studentJoins = ` FROM students st
	JOIN sections s ON s.id = st.section_id
	JOIN courses c ON c.id = s.course_id`

func scanStudent(row interface{ Scan(...interface{}) error }) (*model.Student, error) {
	st := &model.Student{}
	err := row.Scan(&st.ID, &st.RegistryNo, &st.Name, &st.Contact, &st.SectionID,
		&st.SectionKey, &st.Status, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+studentJoins+` WHERE st.id = $1`, id))
}

// GetByRegistryNo retrieves a student by their unique registry number.
func (r *StudentRepository) GetByRegistryNo(ctx context.Context, registryNo string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+studentJoins+` WHERE st.registry_no = $1`, registryNo))
}

// ListPaginated retrieves students with pagination and optional filters.
func (r *StudentRepository) ListPaginated(ctx context.Context, sectionID *int, status *model.EnrollmentStatus, limit, offset int) ([]model.Student, int, error) {
	where := ``
	var args []interface{}
	argIdx := 1
	if sectionID != nil {
		where += ` WHERE st.section_id = $` + strconv.Itoa(argIdx)
		args = append(args, *sectionID)
		argIdx++
	}
	if status != nil {
		if where == `` {
			where += ` WHERE`
		} else {
			where += ` AND`
		}
		where += ` st.status = $` + strconv.Itoa(argIdx)
		args = append(args, *status)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+studentJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + studentColumns + studentJoins + where +
		` ORDER BY st.name LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *st)
	}
	return students, total, rows.Err()
}

// ListBySection retrieves all students of a section ordered by name.
func (r *StudentRepository) ListBySection(ctx context.Context, sectionID int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+studentJoins+` WHERE st.section_id = $1 ORDER BY st.name`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *st)
	}
	return students, rows.Err()
}

// Create inserts a new student. The registry number is assigned from the
// student sequence inside the insert.
func (r *StudentRepository) Create(ctx context.Context, st *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (registry_no, name, contact, section_id)
		 VALUES ($1 || lpad(nextval('student_registry_seq')::text, 7, '0'), $2, $3, $4)
		 RETURNING id, registry_no, status, created_at, updated_at`,
		model.RegistryPrefixStudent, st.Name, st.Contact, st.SectionID,
	).Scan(&st.ID, &st.RegistryNo, &st.Status, &st.CreatedAt, &st.UpdatedAt)
}

// Update modifies a student's basic info.
func (r *StudentRepository) Update(ctx context.Context, st *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, contact = $2, section_id = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		st.Name, st.Contact, st.SectionID, st.Status, st.ID,
	)
	return err
}

// Delete removes a student; enrollments and their records cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
