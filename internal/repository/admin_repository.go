package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrDuplicateUsername = errors.New("admin with this username already exists")

// AdminRepository handles administrator data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.registry_no, a.username, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON r.id = a.role_id
		 WHERE a.id = $1`, id,
	).Scan(&a.ID, &a.RegistryNo, &a.Username, &a.PasswordHash, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByUsername retrieves an admin by their unique username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.registry_no, a.username, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON r.id = a.role_id
		 WHERE a.username = $1`, username,
	).Scan(&a.ID, &a.RegistryNo, &a.Username, &a.PasswordHash, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new admin. The registry number is assigned from the
// admin sequence inside the insert.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (registry_no, username, password_hash, role_id)
		 VALUES ($1 || lpad(nextval('admin_registry_seq')::text, 7, '0'), $2, $3, $4)
		 RETURNING id, registry_no, created_at, updated_at`,
		model.RegistryPrefixAdmin, a.Username, a.PasswordHash, a.RoleID,
	).Scan(&a.ID, &a.RegistryNo, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// List retrieves every admin account with its role name.
func (r *AdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.registry_no, a.username, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON r.id = a.role_id
		 ORDER BY a.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.RegistryNo, &a.Username, &a.PasswordHash, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// UpdatePassword updates an admin's password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Count returns the number of admin accounts.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

// SetSecurityQuestions replaces an admin's recovery questions.
func (r *AdminRepository) SetSecurityQuestions(ctx context.Context, adminID int, questions []model.SecurityQuestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM admin_security_questions WHERE admin_id = $1`, adminID); err != nil {
		return err
	}
	for _, q := range questions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO admin_security_questions (admin_id, question, answer_hash) VALUES ($1, $2, $3)`,
			adminID, q.Question, q.AnswerHash,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetSecurityQuestions retrieves an admin's recovery questions in insert order.
func (r *AdminRepository) GetSecurityQuestions(ctx context.Context, adminID int) ([]model.SecurityQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, admin_id, question, answer_hash
		 FROM admin_security_questions WHERE admin_id = $1 ORDER BY id`, adminID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.SecurityQuestion
	for rows.Next() {
		var q model.SecurityQuestion
		if err := rows.Scan(&q.ID, &q.AdminID, &q.Question, &q.AnswerHash); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
