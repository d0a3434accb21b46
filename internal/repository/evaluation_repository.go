package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// EvaluationRepository handles faculty evaluation data access.
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// Create inserts an evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, e *model.Evaluation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO evaluations (student_id, teacher_id, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.StudentID, e.TeacherID, e.Rating, e.Comment,
	).Scan(&e.ID, &e.CreatedAt)
}

// ListByTeacher retrieves a teacher's evaluations, newest first.
func (r *EvaluationRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Evaluation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, teacher_id, rating, comment, created_at
		 FROM evaluations WHERE teacher_id = $1 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []model.Evaluation
	for rows.Next() {
		var e model.Evaluation
		if err := rows.Scan(&e.ID, &e.StudentID, &e.TeacherID, &e.Rating, &e.Comment, &e.CreatedAt); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// GetSummary aggregates a teacher's average rating and count.
func (r *EvaluationRepository) GetSummary(ctx context.Context, teacherID int) (*model.EvaluationSummary, error) {
	s := &model.EvaluationSummary{TeacherID: teacherID}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0), COUNT(*)
		 FROM evaluations WHERE teacher_id = $1`, teacherID,
	).Scan(&s.AverageRating, &s.Count)
	if err != nil {
		return nil, err
	}
	return s, nil
}
