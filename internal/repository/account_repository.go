package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrDuplicateAccount = errors.New("portal account already exists for this person")

// AccountRepository handles portal account data access.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByRegistryNo retrieves an account by role and registry number.
func (r *AccountRepository) GetByRegistryNo(ctx context.Context, role model.PortalRole, registryNo string) (*model.PortalAccount, error) {
	a := &model.PortalAccount{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, role, person_id, registry_no, password_hash, created_at, updated_at
		 FROM portal_accounts WHERE role = $1 AND registry_no = $2`, role, registryNo,
	).Scan(&a.ID, &a.Role, &a.PersonID, &a.RegistryNo, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByPerson retrieves an account by role and person ID.
func (r *AccountRepository) GetByPerson(ctx context.Context, role model.PortalRole, personID int) (*model.PortalAccount, error) {
	a := &model.PortalAccount{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, role, person_id, registry_no, password_hash, created_at, updated_at
		 FROM portal_accounts WHERE role = $1 AND person_id = $2`, role, personID,
	).Scan(&a.ID, &a.Role, &a.PersonID, &a.RegistryNo, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a portal account.
func (r *AccountRepository) Create(ctx context.Context, a *model.PortalAccount) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO portal_accounts (role, person_id, registry_no, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Role, a.PersonID, a.RegistryNo, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAccount
		}
		return err
	}
	return nil
}

// UpdatePassword updates an account's password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE portal_accounts SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Delete removes a portal account by role and person ID.
func (r *AccountRepository) Delete(ctx context.Context, role model.PortalRole, personID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM portal_accounts WHERE role = $1 AND person_id = $2`, role, personID,
	)
	return err
}
