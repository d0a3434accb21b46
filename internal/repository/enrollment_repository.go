package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrDuplicateEnrollment = errors.New("student is already enrolled in this subject")

// EnrollmentRepository handles enrollment, attendance, exam and activity
// data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create enrolls a student in a subject.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, subject) VALUES ($1, $2)
		 RETURNING id, exempt, created_at`,
		e.StudentID, e.Subject,
	).Scan(&e.ID, &e.Exempt, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEnrollment
		}
		return err
	}
	return nil
}

// Get retrieves one enrollment by student and subject.
func (r *EnrollmentRepository) Get(ctx context.Context, studentID int, subject string) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, subject, exempt, created_at
		 FROM enrollments WHERE student_id = $1 AND subject = $2`,
		studentID, subject,
	).Scan(&e.ID, &e.StudentID, &e.Subject, &e.Exempt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByStudent retrieves all of a student's enrollments.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, subject, exempt, created_at
		 FROM enrollments WHERE student_id = $1 ORDER BY subject`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Subject, &e.Exempt, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// SetExempt flips the exempt flag. Returns false when the enrollment does
// not exist.
func (r *EnrollmentRepository) SetExempt(ctx context.Context, id int, exempt bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET exempt = $1 WHERE id = $2`, exempt, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete unenrolls a student from a subject; records cascade.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	return err
}

// MarkAttendance records an attendance mark. Re-marking a date replaces
// the previous status.
func (r *EnrollmentRepository) MarkAttendance(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attendance (enrollment_id, date, status) VALUES ($1, $2, $3)
		 ON CONFLICT (enrollment_id, date) DO UPDATE SET status = EXCLUDED.status
		 RETURNING id`,
		rec.EnrollmentID, rec.Date, rec.Status,
	).Scan(&rec.ID)
}

// GetAttendanceSummary aggregates attendance marks for one enrollment.
func (r *EnrollmentRepository) GetAttendanceSummary(ctx context.Context, enrollmentID int) (model.AttendanceSummary, error) {
	var s model.AttendanceSummary
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'tardy')
		 FROM attendance WHERE enrollment_id = $1`, enrollmentID,
	).Scan(&s.Present, &s.Absent, &s.Tardy)
	return s, err
}

// ListAttendance retrieves the raw marks for one enrollment, oldest first.
func (r *EnrollmentRepository) ListAttendance(ctx context.Context, enrollmentID int) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, enrollment_id, to_char(date, 'YYYY-MM-DD'), status
		 FROM attendance WHERE enrollment_id = $1 ORDER BY date`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EnrollmentID, &rec.Date, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordExam upserts an exam score for one enrollment and exam type.
func (r *EnrollmentRepository) RecordExam(ctx context.Context, score *model.ExamScore) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_scores (enrollment_id, type, score) VALUES ($1, $2, $3)
		 ON CONFLICT (enrollment_id, type) DO UPDATE SET score = EXCLUDED.score
		 RETURNING id`,
		score.EnrollmentID, score.Type, score.Score,
	).Scan(&score.ID)
}

// GetExamScores retrieves the recorded exam scores for one enrollment.
func (r *EnrollmentRepository) GetExamScores(ctx context.Context, enrollmentID int) (map[model.ExamType]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, score FROM exam_scores WHERE enrollment_id = $1`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[model.ExamType]float64)
	for rows.Next() {
		var t model.ExamType
		var score float64
		if err := rows.Scan(&t, &score); err != nil {
			return nil, err
		}
		scores[t] = score
	}
	return scores, rows.Err()
}

// AddActivity appends a graded activity.
func (r *EnrollmentRepository) AddActivity(ctx context.Context, a *model.Activity) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO activities (enrollment_id, total_items, correct_answers, score)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		a.EnrollmentID, a.TotalItems, a.CorrectAnswers, a.Score,
	).Scan(&a.ID)
}

// ListActivities retrieves the graded activities for one enrollment.
func (r *EnrollmentRepository) ListActivities(ctx context.Context, enrollmentID int) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, enrollment_id, total_items, correct_answers, score
		 FROM activities WHERE enrollment_id = $1 ORDER BY id`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.EnrollmentID, &a.TotalItems, &a.CorrectAnswers, &a.Score); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
