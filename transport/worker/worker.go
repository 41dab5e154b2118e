package worker

import (
	"context"
	"time"

	"github.com/jmhodges/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kazibot/kazi/internal/domain"
)

const (
	defaultInterval    = 30 * time.Second
	defaultSendTimeout = 10 * time.Second
)

// Worker is the delivery loop: it polls for due reminders on a fixed
// interval and pushes them out through the messaging channel. A single
// active poller is assumed; running several would require an atomic
// fetch-and-claim step the store does not implement.
type Worker struct {
	reminderRepo domain.ReminderRepository
	sender       domain.MessageSender
	clk          clock.Clock
	logger       *zap.SugaredLogger
	interval     time.Duration
	sendTimeout  time.Duration
}

func NewWorker(reminderRepo domain.ReminderRepository, sender domain.MessageSender, clk clock.Clock, logger *zap.SugaredLogger) *Worker {
	return &Worker{
		reminderRepo: reminderRepo,
		sender:       sender,
		clk:          clk,
		logger:       logger,
		interval:     defaultInterval,
		sendTimeout:  defaultSendTimeout,
	}
}

// Run polls until ctx is cancelled. A failed cycle is logged and the loop
// keeps going; transient store outages self-heal on a later tick.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Infow("delivery loop started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("delivery loop stopped")
			return
		case <-ticker.C:
			if err := w.runCycle(ctx); err != nil {
				w.logger.Errorw("delivery cycle failed", "err", err)
			}
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) error {
	due, err := w.reminderRepo.FetchDue(ctx, w.clk.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "fetching due reminders")
	}

	for _, reminder := range due {
		if err := w.deliver(ctx, reminder); err != nil {
			// Row stays pending and is retried next cycle.
			w.logger.Errorw("failed delivering reminder", "id", reminder.ID, "owner", reminder.Owner, "err", err)
		}
	}
	return nil
}

// deliver sends one reminder and marks it sent. Marking only happens after a
// completed send, so delivery is at-least-once: losing the success signal
// between send and mark means a duplicate on the next cycle.
func (w *Worker) deliver(ctx context.Context, reminder domain.Reminder) error {
	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.sender.Send(sendCtx, reminder.Owner, "REMINDER: "+reminder.Task); err != nil {
		return errors.Wrap(err, "sending notification")
	}

	marked, err := w.reminderRepo.MarkSent(ctx, reminder.ID)
	if err != nil {
		return errors.Wrap(err, "marking reminder sent")
	}
	if !marked {
		w.logger.Warnw("reminder was already marked sent", "id", reminder.ID)
		return nil
	}

	w.logger.Infow("reminder delivered", "id", reminder.ID, "owner", reminder.Owner, "task", reminder.Task)
	return nil
}
