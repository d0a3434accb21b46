package model

import "time"

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is a teacher's absence request, reviewed by an admin.
type LeaveRequest struct {
	ID        int         `json:"id"`
	TeacherID int         `json:"teacher_id"`
	DateFrom  string      `json:"date_from"`
	DateTo    string      `json:"date_to"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// SubmitLeaveRequest is the payload for submitting a leave request.
type SubmitLeaveRequest struct {
	DateFrom string `json:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" binding:"required,min=3,max=500"`
}

// ReviewLeaveRequest approves or rejects a pending leave request.
type ReviewLeaveRequest struct {
	Status LeaveStatus `json:"status" binding:"required,oneof=approved rejected"`
}
