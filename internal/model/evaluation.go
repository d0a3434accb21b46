package model

import "time"

// Evaluation is one student's anonymous rating of a teacher.
type Evaluation struct {
	ID        int       `json:"id"`
	StudentID int       `json:"-"`
	TeacherID int       `json:"teacher_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// EvaluationSummary aggregates a teacher's ratings.
type EvaluationSummary struct {
	TeacherID     int     `json:"teacher_id"`
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// SubmitEvaluationRequest rates a teacher.
type SubmitEvaluationRequest struct {
	TeacherID int    `json:"teacher_id" binding:"required,min=1"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=1000"`
}
