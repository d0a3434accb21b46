package model

import "time"

// SubjectSnapshot freezes one subject's standing inside a term snapshot.
type SubjectSnapshot struct {
	Grade      float64              `json:"grade"`
	Exempt     bool                 `json:"exempt"`
	ExamScores map[ExamType]float64 `json:"exam_scores"`
	Activities int                  `json:"activities"`
	Attendance AttendanceSummary    `json:"attendance"`
}

// AcademicSnapshot is an immutable end-of-term archive of one student's
// grades, captured when an admin closes the term for a section.
type AcademicSnapshot struct {
	ID        int                        `json:"id"`
	StudentID int                        `json:"student_id"`
	Semester  string                     `json:"semester"`
	Section   string                     `json:"section"`
	GPA       float64                    `json:"gpa"`
	Subjects  map[string]SubjectSnapshot `json:"subjects"`
	CreatedAt time.Time                  `json:"created_at"`
}

// CaptureSnapshotRequest archives the current term for a whole section.
type CaptureSnapshotRequest struct {
	Section  string `json:"section" binding:"required,section"`
	Semester string `json:"semester" binding:"required,min=2,max=60"`
}
