package domain

import (
	"context"
	"errors"
	"time"
)

type ReminderStatus string

var (
	StatusPending ReminderStatus = "pending"
	StatusSent    ReminderStatus = "sent"
)

var ErrStorageUnavailable = errors.New("reminder storage is unavailable")

type Reminder struct {
	ID     string         `db:"id"`
	Owner  string         `db:"user_phone"`
	Task   string         `db:"task"`
	DueAt  time.Time      `db:"remind_at"`
	Status ReminderStatus `db:"status"`
}

type ReminderRepository interface {
	Insert(ctx context.Context, owner, task string, dueAt time.Time) (string, error)
	FetchDue(ctx context.Context, now time.Time) ([]Reminder, error)
	MarkSent(ctx context.Context, id string) (bool, error)
}
