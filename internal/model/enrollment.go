package model

import "time"

// AttendanceStatus is a per-meeting attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceTardy   AttendanceStatus = "tardy"
)

// ExamType is one of the three term examinations.
type ExamType string

const (
	ExamPrelim  ExamType = "prelim"
	ExamMidterm ExamType = "midterm"
	ExamFinals  ExamType = "finals"
)

// Enrollment ties a student to a subject and carries the exempt flag.
// Exempt enrollments keep their records but are excluded from GPA.
type Enrollment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Subject   string    `json:"subject"`
	Exempt    bool      `json:"exempt"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceRecord is one attendance mark. Re-marking the same date
// replaces the previous status.
type AttendanceRecord struct {
	ID           int              `json:"id"`
	EnrollmentID int              `json:"-"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
}

// ExamScore is one recorded exam result, upserted per exam type.
type ExamScore struct {
	ID           int      `json:"id"`
	EnrollmentID int      `json:"-"`
	Type         ExamType `json:"type"`
	Score        float64  `json:"score"`
}

// Activity is one graded class activity.
type Activity struct {
	ID             int     `json:"id"`
	EnrollmentID   int     `json:"-"`
	TotalItems     int     `json:"total_items"`
	CorrectAnswers int     `json:"correct_answers"`
	Score          float64 `json:"score"`
}

// AttendanceSummary aggregates attendance marks per status.
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Tardy   int `json:"tardy"`
}

// SubjectGradeView is the computed standing of a student in one subject.
type SubjectGradeView struct {
	Subject    string               `json:"subject"`
	Exempt     bool                 `json:"exempt"`
	Grade      float64              `json:"grade"`
	ExamScores map[ExamType]float64 `json:"exam_scores"`
	Activities []Activity           `json:"activities"`
	Attendance AttendanceSummary    `json:"attendance"`
}

// EnrollSubjectRequest enrolls a student in a subject.
type EnrollSubjectRequest struct {
	Subject string `json:"subject" binding:"required,min=2,max=120"`
}

// MarkAttendanceRequest records an attendance mark for a date.
type MarkAttendanceRequest struct {
	Subject string           `json:"subject" binding:"required,min=2,max=120"`
	Date    string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status  AttendanceStatus `json:"status" binding:"required,oneof=present absent tardy"`
}

// RecordExamRequest records (or replaces) an exam score.
type RecordExamRequest struct {
	Subject string   `json:"subject" binding:"required,min=2,max=120"`
	Type    ExamType `json:"type" binding:"required,oneof=prelim midterm finals"`
	Score   float64  `json:"score" binding:"min=0,max=100"`
}

// AddActivityRequest appends a graded activity.
type AddActivityRequest struct {
	Subject        string `json:"subject" binding:"required,min=2,max=120"`
	TotalItems     int    `json:"total_items" binding:"required,min=1"`
	CorrectAnswers int    `json:"correct_answers" binding:"min=0"`
}
