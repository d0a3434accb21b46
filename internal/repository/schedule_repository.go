package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

// ScheduleRepository handles class schedule and leave request data access.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// ListByTeacher retrieves a teacher's weekly timetable.
func (r *ScheduleRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Schedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, teacher_id, section, subject, day, start_time, end_time, room, created_at
		 FROM class_schedules WHERE teacher_id = $1
		 ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday'], day), start_time`,
		teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// ListBySection retrieves every slot scheduled for a section.
func (r *ScheduleRepository) ListBySection(ctx context.Context, section string) ([]model.Schedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, teacher_id, section, subject, day, start_time, end_time, room, created_at
		 FROM class_schedules WHERE section = $1
		 ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday'], day), start_time`,
		section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

func scanSchedules(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.Section, &s.Subject, &s.Day,
			&s.StartTime, &s.EndTime, &s.Room, &s.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Create inserts a timetable slot. Conflict checking happens in the
// service before the insert.
func (r *ScheduleRepository) Create(ctx context.Context, s *model.Schedule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_schedules (teacher_id, section, subject, day, start_time, end_time, room)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		s.TeacherID, s.Section, s.Subject, s.Day, s.StartTime, s.EndTime, s.Room,
	).Scan(&s.ID, &s.CreatedAt)
}

// Delete removes a slot. Returns false when it did not exist.
func (r *ScheduleRepository) Delete(ctx context.Context, teacherID, scheduleID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM class_schedules WHERE id = $1 AND teacher_id = $2`, scheduleID, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateLeave inserts a pending leave request.
func (r *ScheduleRepository) CreateLeave(ctx context.Context, l *model.LeaveRequest) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO leave_requests (teacher_id, date_from, date_to, reason)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at`,
		l.TeacherID, l.DateFrom, l.DateTo, l.Reason,
	).Scan(&l.ID, &l.Status, &l.CreatedAt)
}

// GetLeave retrieves one leave request.
func (r *ScheduleRepository) GetLeave(ctx context.Context, id int) (*model.LeaveRequest, error) {
	l := &model.LeaveRequest{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, teacher_id, to_char(date_from, 'YYYY-MM-DD'), to_char(date_to, 'YYYY-MM-DD'), reason, status, created_at
		 FROM leave_requests WHERE id = $1`, id,
	).Scan(&l.ID, &l.TeacherID, &l.DateFrom, &l.DateTo, &l.Reason, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLeaves retrieves leave requests, optionally filtered by teacher or
// status.
func (r *ScheduleRepository) ListLeaves(ctx context.Context, teacherID *int, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	query := `SELECT id, teacher_id, to_char(date_from, 'YYYY-MM-DD'), to_char(date_to, 'YYYY-MM-DD'), reason, status, created_at
	          FROM leave_requests WHERE 1=1`
	var args []interface{}
	if teacherID != nil {
		args = append(args, *teacherID)
		query += ` AND teacher_id = $1`
	}
	if status != nil {
		args = append(args, *status)
		if len(args) == 1 {
			query += ` AND status = $1`
		} else {
			query += ` AND status = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []model.LeaveRequest
	for rows.Next() {
		var l model.LeaveRequest
		if err := rows.Scan(&l.ID, &l.TeacherID, &l.DateFrom, &l.DateTo, &l.Reason, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// SetLeaveStatus reviews a leave request. Returns false when the request
// does not exist or is no longer pending.
func (r *ScheduleRepository) SetLeaveStatus(ctx context.Context, id int, status model.LeaveStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leave_requests SET status = $1 WHERE id = $2 AND status = 'pending'`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
