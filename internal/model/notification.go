package model

import "time"

// NotificationType classifies a parent notification.
type NotificationType string

const (
	NotifyGrade      NotificationType = "grade"
	NotifyAttendance NotificationType = "attendance"
	NotifyFee        NotificationType = "fee"
	NotifyEvent      NotificationType = "event"
	NotifyHoliday    NotificationType = "holiday"
	NotifyMeeting    NotificationType = "meeting"
	NotifyMessage    NotificationType = "message"
)

// Notification is one message delivered to a parent's inbox.
type Notification struct {
	ID       int              `json:"id"`
	NotifyNo string           `json:"notify_no"`
	ParentID int              `json:"parent_id"`
	Subject  string           `json:"subject"`
	Message  string           `json:"message"`
	Type     NotificationType `json:"type"`
	Read     bool             `json:"read"`
	SentAt   time.Time        `json:"sent_at"`
}

// SendNotificationRequest sends one notification to one parent.
type SendNotificationRequest struct {
	ParentID int              `json:"parent_id" binding:"required,min=1"`
	Subject  string           `json:"subject" binding:"required,min=2,max=200"`
	Message  string           `json:"message" binding:"required,min=1,max=2000"`
	Type     NotificationType `json:"type" binding:"required,oneof=grade attendance fee event holiday meeting message"`
}

// BroadcastRequest sends an event or holiday notice to every parent.
type BroadcastRequest struct {
	Subject string           `json:"subject" binding:"required,min=2,max=200"`
	Message string           `json:"message" binding:"required,min=1,max=2000"`
	Type    NotificationType `json:"type" binding:"required,oneof=event holiday"`
}

// ParentMessageRequest lets a parent send a meeting request or message,
// which lands in the notification ledger for the audit trail.
type ParentMessageRequest struct {
	Subject string `json:"subject" binding:"required,min=2,max=200"`
	Message string `json:"message" binding:"required,min=1,max=2000"`
}
