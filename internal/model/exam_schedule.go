package model

import "time"

// ExamSchedule announces one upcoming examination for a section.
type ExamSchedule struct {
	ID        int       `json:"id"`
	Section   string    `json:"section"`
	Subject   string    `json:"subject"`
	Type      ExamType  `json:"type"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateExamScheduleRequest schedules an exam for a section.
type CreateExamScheduleRequest struct {
	Section   string   `json:"section" binding:"required,section"`
	Subject   string   `json:"subject" binding:"required,min=2,max=120"`
	Type      ExamType `json:"type" binding:"required,oneof=prelim midterm finals"`
	Date      string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string   `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string   `json:"end_time" binding:"required,datetime=15:04"`
	Room      string   `json:"room" binding:"required,min=1,max=40"`
}

// UpdateExamScheduleRequest reschedules an announced exam. The section is
// fixed at creation; everything else can change.
type UpdateExamScheduleRequest struct {
	Subject   string   `json:"subject" binding:"required,min=2,max=120"`
	Type      ExamType `json:"type" binding:"required,oneof=prelim midterm finals"`
	Date      string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string   `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string   `json:"end_time" binding:"required,datetime=15:04"`
	Room      string   `json:"room" binding:"required,min=1,max=40"`
}
