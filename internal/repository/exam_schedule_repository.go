package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// ExamScheduleRepository handles exam announcement data access.
type ExamScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewExamScheduleRepository creates a new ExamScheduleRepository.
func NewExamScheduleRepository(pool *pgxpool.Pool) *ExamScheduleRepository {
	return &ExamScheduleRepository{pool: pool}
}

// Create inserts an exam schedule entry.
func (r *ExamScheduleRepository) Create(ctx context.Context, e *model.ExamSchedule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_schedules (section, subject, type, date, start_time, end_time, room)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		e.Section, e.Subject, e.Type, e.Date, e.StartTime, e.EndTime, e.Room,
	).Scan(&e.ID, &e.CreatedAt)
}

// Get retrieves one exam schedule entry.
func (r *ExamScheduleRepository) Get(ctx context.Context, id int) (*model.ExamSchedule, error) {
	e := &model.ExamSchedule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, section, subject, type, to_char(date, 'YYYY-MM-DD'), start_time, end_time, room, created_at
		 FROM exam_schedules WHERE id = $1`, id,
	).Scan(&e.ID, &e.Section, &e.Subject, &e.Type, &e.Date,
		&e.StartTime, &e.EndTime, &e.Room, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Update rewrites an exam schedule entry. Returns false when it did not
// exist.
func (r *ExamScheduleRepository) Update(ctx context.Context, e *model.ExamSchedule) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exam_schedules
		 SET subject = $2, type = $3, date = $4, start_time = $5, end_time = $6, room = $7
		 WHERE id = $1`,
		e.ID, e.Subject, e.Type, e.Date, e.StartTime, e.EndTime, e.Room)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListBySection retrieves a section's exam schedule in date order.
func (r *ExamScheduleRepository) ListBySection(ctx context.Context, section string) ([]model.ExamSchedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, section, subject, type, to_char(date, 'YYYY-MM-DD'), start_time, end_time, room, created_at
		 FROM exam_schedules WHERE section = $1 ORDER BY date, start_time`, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.ExamSchedule
	for rows.Next() {
		var e model.ExamSchedule
		if err := rows.Scan(&e.ID, &e.Section, &e.Subject, &e.Type, &e.Date,
			&e.StartTime, &e.EndTime, &e.Room, &e.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, e)
	}
	return schedules, rows.Err()
}

// Delete removes an exam schedule entry. Returns false when it did not
// exist.
func (r *ExamScheduleRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exam_schedules WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
