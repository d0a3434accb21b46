package websocket

import "github.com/campushq/campus-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
	ActionAck  Action = "ack"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AckRequest is sent by the client to mark a notification as read
// without leaving the stream.
type AckRequest struct {
	Action         Action `json:"action"`
	NotificationID int    `json:"notification_id"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventNotification Event = "notification"
	EventAcked        Event = "acked"
	EventPong         Event = "pong"
)

// NotificationEvent pushes a freshly delivered notification.
type NotificationEvent struct {
	Event        Event              `json:"event"`
	Notification model.Notification `json:"notification"`
}

// AckedResponse confirms a read receipt.
type AckedResponse struct {
	Event          Event `json:"event"`
	NotificationID int   `json:"notification_id"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
