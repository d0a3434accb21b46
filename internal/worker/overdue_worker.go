package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushq/campus-backend/internal/repository"
)

// OverdueWorker periodically sweeps pending invoices whose due date has
// passed and marks them overdue.
type OverdueWorker struct {
	feeRepo  *repository.FeeRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewOverdueWorker creates a new OverdueWorker.
func NewOverdueWorker(feeRepo *repository.FeeRepository, interval time.Duration, log zerolog.Logger) *OverdueWorker {
	return &OverdueWorker{
		feeRepo:  feeRepo,
		interval: interval,
		log:      log.With().Str("component", "overdue_worker").Logger(),
	}
}

// Start runs a sweep immediately and then on every tick until the context
// is cancelled.
func (w *OverdueWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("OverdueWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("OverdueWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	n, err := w.feeRepo.MarkOverdue(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Overdue sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int("invoices", n).Msg("Marked invoices overdue")
	}
}
