package model

import "time"

// DisciplineAction distinguishes sanctions from commendations.
type DisciplineAction string

const (
	ActionDiscipline   DisciplineAction = "discipline"
	ActionCommendation DisciplineAction = "commendation"
)

// DisciplineRecord is one behavioural entry on a student's file.
type DisciplineRecord struct {
	ID              int              `json:"id"`
	StudentID       int              `json:"student_id"`
	ActionType      DisciplineAction `json:"action_type"`
	Severity        string           `json:"severity,omitempty"` // Discipline only
	Description     string           `json:"description"`
	Date            string           `json:"date"`
	Status          string           `json:"status"` // open | resolved
	ResolutionNotes string           `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// CreateDisciplineRequest records a discipline entry or commendation.
type CreateDisciplineRequest struct {
	StudentID   int              `json:"student_id" binding:"required,min=1"`
	ActionType  DisciplineAction `json:"action_type" binding:"required,oneof=discipline commendation"`
	Severity    string           `json:"severity" binding:"omitempty,oneof=minor major severe"`
	Description string           `json:"description" binding:"required,min=3,max=1000"`
	Date        string           `json:"date" binding:"required,datetime=2006-01-02"`
}

// ResolveDisciplineRequest closes a record with resolution notes.
type ResolveDisciplineRequest struct {
	ResolutionNotes string `json:"resolution_notes" binding:"required,min=3,max=1000"`
}
