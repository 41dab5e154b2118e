package usecase

import (
	"context"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/kazibot/kazi/internal/domain"
	"github.com/kazibot/kazi/internal/intent"
	"github.com/kazibot/kazi/internal/timeutil"
)

type ReminderUsecase struct {
	reminderRepo domain.ReminderRepository
	clk          clock.Clock
	logger       *zap.SugaredLogger
}

func NewReminderUsecase(reminderRepo domain.ReminderRepository, clk clock.Clock, logger *zap.SugaredLogger) *ReminderUsecase {
	return &ReminderUsecase{
		reminderRepo: reminderRepo,
		clk:          clk,
		logger:       logger,
	}
}

// HandleModelReply extracts a reminder intent from a raw model reply,
// persists it, and returns the user-visible text. The returned text always
// reflects the model's wording: a failed resolution or insert is logged and
// swallowed so the conversation is never contradicted by a background error.
func (u *ReminderUsecase) HandleModelReply(ctx context.Context, rawReply, owner, tz string) string {
	display, req := intent.Parse(rawReply)
	if req == nil {
		return display
	}

	dueAt, err := timeutil.NextOccurrence(*req.Hour, *req.Minute, tz, u.clk.Now())
	if err != nil {
		u.logger.Errorw("failed resolving reminder time", "owner", owner, "timezone", tz, "err", err)
		return display
	}

	id, err := u.reminderRepo.Insert(ctx, owner, req.Task, dueAt)
	if err != nil {
		u.logger.Errorw("failed persisting reminder", "owner", owner, "err", err)
		return display
	}

	u.logger.Infow("reminder saved", "id", id, "owner", owner, "task", req.Task, "due_at", dueAt)
	return display
}
