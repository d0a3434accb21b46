package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// DisciplineRepository handles behavioural record data access.
type DisciplineRepository struct {
	pool *pgxpool.Pool
}

// NewDisciplineRepository creates a new DisciplineRepository.
func NewDisciplineRepository(pool *pgxpool.Pool) *DisciplineRepository {
	return &DisciplineRepository{pool: pool}
}

// Create inserts a discipline record or commendation.
func (r *DisciplineRepository) Create(ctx context.Context, d *model.DisciplineRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO discipline_records (student_id, action_type, severity, description, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at`,
		d.StudentID, d.ActionType, d.Severity, d.Description, d.Date,
	).Scan(&d.ID, &d.Status, &d.CreatedAt)
}

// ListByStudent retrieves a student's behavioural file, newest first.
func (r *DisciplineRepository) ListByStudent(ctx context.Context, studentID int) ([]model.DisciplineRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, action_type, severity, description, to_char(date, 'YYYY-MM-DD'),
		        status, resolution_notes, created_at
		 FROM discipline_records WHERE student_id = $1 ORDER BY date DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.DisciplineRecord
	for rows.Next() {
		var d model.DisciplineRecord
		if err := rows.Scan(&d.ID, &d.StudentID, &d.ActionType, &d.Severity, &d.Description,
			&d.Date, &d.Status, &d.ResolutionNotes, &d.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

// Resolve closes an open record with notes. Returns false when the record
// does not exist or was already resolved.
func (r *DisciplineRepository) Resolve(ctx context.Context, id int, notes string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE discipline_records SET status = 'resolved', resolution_notes = $1
		 WHERE id = $2 AND status = 'open'`, notes, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
