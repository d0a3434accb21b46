package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrStudentAlreadyLinked = errors.New("student is already linked to a parent")

// ParentRepository handles parent/guardian data access.
type ParentRepository struct {
	pool *pgxpool.Pool
}

// NewParentRepository creates a new ParentRepository.
func NewParentRepository(pool *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{pool: pool}
}

func (r *ParentRepository) fillStudents(ctx context.Context, p *model.Parent) error {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id FROM parent_students WHERE parent_id = $1 ORDER BY student_id`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.StudentIDs = append(p.StudentIDs, id)
	}
	return rows.Err()
}

// GetByID retrieves a parent by ID.
func (r *ParentRepository) GetByID(ctx context.Context, id int) (*model.Parent, error) {
	p := &model.Parent{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, registry_no, name, email, phone, status, created_at, updated_at
		 FROM parents WHERE id = $1`, id,
	).Scan(&p.ID, &p.RegistryNo, &p.Name, &p.Email, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.fillStudents(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByRegistryNo retrieves a parent by their unique registry number.
func (r *ParentRepository) GetByRegistryNo(ctx context.Context, registryNo string) (*model.Parent, error) {
	p := &model.Parent{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, registry_no, name, email, phone, status, created_at, updated_at
		 FROM parents WHERE registry_no = $1`, registryNo,
	).Scan(&p.ID, &p.RegistryNo, &p.Name, &p.Email, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.fillStudents(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByStudent retrieves the parent linked to a student, if any.
func (r *ParentRepository) GetByStudent(ctx context.Context, studentID int) (*model.Parent, error) {
	var parentID int
	err := r.pool.QueryRow(ctx,
		`SELECT parent_id FROM parent_students WHERE student_id = $1`, studentID,
	).Scan(&parentID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, parentID)
}

// ListPaginated retrieves parents with pagination.
func (r *ParentRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Parent, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parents`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, registry_no, name, email, phone, status, created_at, updated_at
		 FROM parents ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var parents []model.Parent
	for rows.Next() {
		var p model.Parent
		if err := rows.Scan(&p.ID, &p.RegistryNo, &p.Name, &p.Email, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		parents = append(parents, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range parents {
		if err := r.fillStudents(ctx, &parents[i]); err != nil {
			return nil, 0, err
		}
	}
	return parents, total, nil
}

// ListIDs retrieves every parent's ID, for broadcast fan-out.
func (r *ParentRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM parents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new parent. The registry number is assigned from the
// parent sequence inside the insert.
func (r *ParentRepository) Create(ctx context.Context, p *model.Parent) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO parents (registry_no, name, email, phone)
		 VALUES ($1 || lpad(nextval('parent_registry_seq')::text, 7, '0'), $2, $3, $4)
		 RETURNING id, registry_no, status, created_at, updated_at`,
		model.RegistryPrefixParent, p.Name, p.Email, p.Phone,
	).Scan(&p.ID, &p.RegistryNo, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

// Update modifies a parent's basic info.
func (r *ParentRepository) Update(ctx context.Context, p *model.Parent) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE parents SET name = $1, email = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		p.Name, p.Email, p.Phone, p.ID,
	)
	return err
}

// Delete removes a parent; links and notifications cascade.
func (r *ParentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM parents WHERE id = $1`, id)
	return err
}

// LinkStudent links a student to a parent. A student may have only one
// parent.
func (r *ParentRepository) LinkStudent(ctx context.Context, parentID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO parent_students (parent_id, student_id) VALUES ($1, $2)`,
		parentID, studentID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrStudentAlreadyLinked
		}
		return err
	}
	return nil
}

// UnlinkStudent removes a parent-student link. Returns false when no such
// link existed.
func (r *ParentRepository) UnlinkStudent(ctx context.Context, parentID, studentID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM parent_students WHERE parent_id = $1 AND student_id = $2`,
		parentID, studentID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IsLinked reports whether a parent is linked to a student.
func (r *ParentRepository) IsLinked(ctx context.Context, parentID, studentID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM parent_students WHERE parent_id = $1 AND student_id = $2)`,
		parentID, studentID,
	).Scan(&exists)
	return exists, err
}
