package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// NotificationHandler handles admin-side parent notifications.
type NotificationHandler struct {
	notifyService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifyService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifyService: notifyService}
}

// Send godoc
// POST /api/v1/admin/notifications
// Queues one notification for one parent.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req model.SendNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.notifyService.Send(c.Request.Context(), &req); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "notification queued"})
}

// Broadcast godoc
// POST /api/v1/admin/notifications/broadcast
// Queues an event or holiday notice for every parent.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req model.BroadcastRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	queued, err := h.notifyService.Broadcast(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "broadcast queued", "recipients": queued})
}

// ListForParent godoc
// GET /api/v1/admin/parents/:parent_id/notifications
// Lets an admin audit a parent's notification ledger.
func (h *NotificationHandler) ListForParent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	notifications, pagination, err := h.notifyService.Inbox(c.Request.Context(), id, c.Query("unread") == "true", page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"notifications": notifications}, pagination)
}
