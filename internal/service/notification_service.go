package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
)

// NotifyPayload is the unit of work pushed onto the fan-out queue and
// consumed by the notify worker.
type NotifyPayload struct {
	ParentID int                    `json:"parent_id"`
	Subject  string                 `json:"subject"`
	Message  string                 `json:"message"`
	Type     model.NotificationType `json:"type"`
}

// parentDirectory is the slice of the parent repository the notification
// service looks recipients up through.
type parentDirectory interface {
	GetByID(ctx context.Context, id int) (*model.Parent, error)
	GetByStudent(ctx context.Context, studentID int) (*model.Parent, error)
	ListIDs(ctx context.Context) ([]int, error)
}

// NotificationService handles the parent notification ledger. Deliveries
// go through a Redis queue so bulk blasts do not block the request.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	parentRepo       parentDirectory
	rdb              *redis.Client
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repository.NotificationRepository, parentRepo parentDirectory, rdb *redis.Client) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, parentRepo: parentRepo, rdb: rdb}
}

// linkedParent resolves a student's parent. A missing link is reported as
// nil parent with no error; anything else is a lookup failure the caller
// must see.
func (s *NotificationService) linkedParent(ctx context.Context, studentID int) (*model.Parent, error) {
	parent, err := s.parentRepo.GetByStudent(ctx, studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parent, nil
}

// Enqueue pushes one notification onto the fan-out queue.
func (s *NotificationService) Enqueue(ctx context.Context, p NotifyPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.rdb.RPush(ctx, config.QueueKey.NotifyFanoutQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// Send queues a notification for one parent after checking they exist.
func (s *NotificationService) Send(ctx context.Context, req *model.SendNotificationRequest) error {
	if _, err := s.parentRepo.GetByID(ctx, req.ParentID); err != nil {
		return err
	}
	return s.Enqueue(ctx, NotifyPayload{
		ParentID: req.ParentID,
		Subject:  req.Subject,
		Message:  req.Message,
		Type:     req.Type,
	})
}

// Broadcast queues an event or holiday notice for every parent. Returns
// the number of recipients.
func (s *NotificationService) Broadcast(ctx context.Context, req *model.BroadcastRequest) (int, error) {
	ids, err := s.parentRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	for _, parentID := range ids {
		if err := s.Enqueue(ctx, NotifyPayload{
			ParentID: parentID,
			Subject:  req.Subject,
			Message:  req.Message,
			Type:     req.Type,
		}); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// NotifyGradeUpdate composes a grade alert for the student's parent, if
// one is linked. Missing links are not an error.
func (s *NotificationService) NotifyGradeUpdate(ctx context.Context, student *model.Student, subject string, grade float64) error {
	parent, err := s.linkedParent(ctx, student.ID)
	if err != nil {
		return err
	}
	if parent == nil {
		return nil
	}
	return s.Enqueue(ctx, NotifyPayload{
		ParentID: parent.ID,
		Subject:  "Grade update for " + student.Name,
		Message:  fmt.Sprintf("%s received an updated grade of %.2f in %s.", student.Name, grade, subject),
		Type:     model.NotifyGrade,
	})
}

// NotifyAttendance composes an attendance alert for the student's parent.
func (s *NotificationService) NotifyAttendance(ctx context.Context, student *model.Student, subject, date string, status model.AttendanceStatus) error {
	if status == model.AttendancePresent {
		return nil
	}
	parent, err := s.linkedParent(ctx, student.ID)
	if err != nil {
		return err
	}
	if parent == nil {
		return nil
	}
	return s.Enqueue(ctx, NotifyPayload{
		ParentID: parent.ID,
		Subject:  "Attendance alert for " + student.Name,
		Message:  fmt.Sprintf("%s was marked %s in %s on %s.", student.Name, status, subject, date),
		Type:     model.NotifyAttendance,
	})
}

// NotifyInvoice composes a fee notice for the student's parent.
func (s *NotificationService) NotifyInvoice(ctx context.Context, student *model.Student, inv *model.Invoice) error {
	parent, err := s.linkedParent(ctx, student.ID)
	if err != nil {
		return err
	}
	if parent == nil {
		return nil
	}
	return s.Enqueue(ctx, NotifyPayload{
		ParentID: parent.ID,
		Subject:  "Invoice " + inv.InvoiceNo + " issued",
		Message:  fmt.Sprintf("An invoice of %.2f for %s is due on %s.", inv.Amount, student.Name, inv.DueDate),
		Type:     model.NotifyFee,
	})
}

// Inbox retrieves a parent's notifications with pagination.
func (s *NotificationService) Inbox(ctx context.Context, parentID int, unreadOnly bool, page, perPage int) ([]model.Notification, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	notifications, total, err := s.notificationRepo.ListByParent(ctx, parentID, unreadOnly, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return notifications, pagination, nil
}

// MarkRead flags one of the parent's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, parentID, notificationID int) (bool, error) {
	return s.notificationRepo.MarkRead(ctx, parentID, notificationID)
}

// CountUnread returns the parent's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, parentID int) (int, error) {
	return s.notificationRepo.CountUnread(ctx, parentID)
}
