package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/kazibot/kazi/internal/domain"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock implements
// it, so repository tests run without a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ReminderRepository struct {
	db DB
}

func NewReminderRepository(db DB) *ReminderRepository {
	return &ReminderRepository{
		db: db,
	}
}

func (r *ReminderRepository) Insert(ctx context.Context, owner, task string, dueAt time.Time) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO reminders (id, user_phone, task, remind_at, status)
						VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, id, owner, task, dueAt.UTC(), domain.StatusPending)
	if err != nil {
		return "", errors.Wrapf(domain.ErrStorageUnavailable, "inserting reminder: %v", err)
	}

	return id, nil
}

// MarkSent transitions a pending reminder to sent. It reports false when the
// row is missing or already sent, so repeated calls are safe.
func (r *ReminderRepository) MarkSent(ctx context.Context, id string) (bool, error) {
	query := `UPDATE reminders SET status = $1 WHERE id = $2 AND status = $3`
	tag, err := r.db.Exec(ctx, query, domain.StatusSent, id, domain.StatusPending)
	if err != nil {
		return false, errors.Wrapf(domain.ErrStorageUnavailable, "marking reminder sent: %v", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReminderRepository) FetchDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	query := `SELECT id, user_phone, task, remind_at FROM reminders WHERE status = $1 AND remind_at <= $2`
	rows, err := r.db.Query(ctx, query, domain.StatusPending, now.UTC())
	if err != nil {
		return nil, errors.Wrapf(domain.ErrStorageUnavailable, "querying due reminders: %v", err)
	}
	defer rows.Close()

	due := make([]domain.Reminder, 0, 10)
	for rows.Next() {
		reminder := domain.Reminder{Status: domain.StatusPending}
		err := rows.Scan(&reminder.ID, &reminder.Owner, &reminder.Task, &reminder.DueAt)
		if err != nil {
			return nil, errors.Wrap(err, "scanning due reminder")
		}
		due = append(due, reminder)
	}

	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "iterating due reminders")
	}

	return due, nil
}
