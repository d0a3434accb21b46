package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// SnapshotRepository handles academic history archive data access.
// Snapshots are written once and never updated.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Create archives one student's term standing.
func (r *SnapshotRepository) Create(ctx context.Context, s *model.AcademicSnapshot) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO academic_snapshots (student_id, semester, section, gpa, subjects)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.StudentID, s.Semester, s.Section, s.GPA, s.Subjects,
	).Scan(&s.ID, &s.CreatedAt)
}

// ListByStudent retrieves a student's archived terms, newest first.
func (r *SnapshotRepository) ListByStudent(ctx context.Context, studentID int) ([]model.AcademicSnapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, semester, section, gpa, subjects, created_at
		 FROM academic_snapshots WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []model.AcademicSnapshot
	for rows.Next() {
		var s model.AcademicSnapshot
		if err := rows.Scan(&s.ID, &s.StudentID, &s.Semester, &s.Section, &s.GPA, &s.Subjects, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
