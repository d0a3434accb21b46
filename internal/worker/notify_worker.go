package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/service"
)

// NotifyPollTimeout must be >= 1s to satisfy Redis BLPop.
const NotifyPollTimeout = 1 * time.Second

// NotifyWorker drains the notification fan-out queue: each payload becomes
// a ledger row and is published to the recipient's channel for any open
// WebSocket stream.
type NotifyWorker struct {
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	log              zerolog.Logger
	done             chan struct{}
}

// NewNotifyWorker creates a new NotifyWorker.
func NewNotifyWorker(notificationRepo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotifyWorker {
	return &NotifyWorker{
		notificationRepo: notificationRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "notify_worker").Logger(),
		done:             make(chan struct{}),
	}
}

// Done is closed once Start has returned, queue drain included. Shutdown
// waits on it so queued notifications are not lost.
func (w *NotifyWorker) Done() <-chan struct{} {
	return w.done
}

// Start runs the worker loop until the context is cancelled, then drains
// whatever is left on the queue.
func (w *NotifyWorker) Start(ctx context.Context) {
	defer close(w.done)
	w.log.Info().Msg("NotifyWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Draining notification queue...")
			w.drain(context.Background())
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotifyPollTimeout, config.QueueKey.NotifyFanoutQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}
			w.deliver(ctx, []byte(item[1]))
		}
	}
}

// drain processes queued payloads without blocking, used on shutdown.
func (w *NotifyWorker) drain(ctx context.Context) {
	for {
		raw, err := w.rdb.LPop(ctx, config.QueueKey.NotifyFanoutQueue).Result()
		if err != nil {
			if err != redis.Nil {
				w.log.Error().Err(err).Msg("LPop error during drain")
			}
			return
		}
		w.deliver(ctx, []byte(raw))
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, raw []byte) {
	var p service.NotifyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		w.log.Error().Err(err).Msg("Invalid JSON payload")
		return
	}

	n := &model.Notification{
		ParentID: p.ParentID,
		Subject:  p.Subject,
		Message:  p.Message,
		Type:     p.Type,
	}
	if err := w.notificationRepo.Create(ctx, n); err != nil {
		w.log.Error().Err(err).Int("parent_id", p.ParentID).Msg("Failed to persist notification")
		return
	}

	// Best effort: a missing subscriber just means nobody is streaming.
	payload, err := json.Marshal(n)
	if err != nil {
		w.log.Error().Err(err).Msg("Marshal notification")
		return
	}
	if err := w.rdb.Publish(ctx, config.CacheKey.ParentNotifyChannel(p.ParentID), payload).Err(); err != nil {
		w.log.Error().Err(err).Int("parent_id", p.ParentID).Msg("Publish notification")
	}

	w.log.Debug().
		Str("notify_no", n.NotifyNo).
		Int("parent_id", n.ParentID).
		Str("type", string(n.Type)).
		Msg("Notification delivered")
}
