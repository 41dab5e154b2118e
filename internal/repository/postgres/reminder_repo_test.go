package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazibot/kazi/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestReminderInsert(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	dueAt := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO reminders").
		WithArgs(pgxmock.AnyArg(), "whatsapp:+254700000001", "call mom", dueAt, domain.StatusPending).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := repo.Insert(context.Background(), "whatsapp:+254700000001", "call mom", dueAt)
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err, "insert must assign a uuid id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderInsertStorageUnavailable(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	mock.ExpectExec("INSERT INTO reminders").
		WithArgs(pgxmock.AnyArg(), "whatsapp:+1", "x", pgxmock.AnyArg(), domain.StatusPending).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Insert(context.Background(), "whatsapp:+1", "x", time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestReminderMarkSent(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	mock.ExpectExec("UPDATE reminders SET status").
		WithArgs(domain.StatusSent, "r-1", domain.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	marked, err := repo.MarkSent(context.Background(), "r-1")
	require.NoError(t, err)
	assert.True(t, marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderMarkSentIdempotent(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	// Second call finds no pending row and must report false without error.
	mock.ExpectExec("UPDATE reminders SET status").
		WithArgs(domain.StatusSent, "r-1", domain.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE reminders SET status").
		WithArgs(domain.StatusSent, "r-1", domain.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	marked, err := repo.MarkSent(context.Background(), "r-1")
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkSent(context.Background(), "r-1")
	require.NoError(t, err)
	assert.False(t, marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderFetchDue(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	dueAt := now.Add(-2 * time.Minute)

	rows := pgxmock.NewRows([]string{"id", "user_phone", "task", "remind_at"}).
		AddRow("r-1", "whatsapp:+1", "call mom", dueAt).
		AddRow("r-2", "whatsapp:+2", "buy milk", dueAt)
	mock.ExpectQuery("SELECT id, user_phone, task, remind_at FROM reminders").
		WithArgs(domain.StatusPending, now).
		WillReturnRows(rows)

	due, err := repo.FetchDue(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 2)

	assert.Equal(t, "r-1", due[0].ID)
	assert.Equal(t, "whatsapp:+1", due[0].Owner)
	assert.Equal(t, "call mom", due[0].Task)
	assert.Equal(t, domain.StatusPending, due[0].Status)
	assert.Equal(t, "r-2", due[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderFetchDueEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_phone, task, remind_at FROM reminders").
		WithArgs(domain.StatusPending, now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_phone", "task", "remind_at"}))

	due, err := repo.FetchDue(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReminderFetchDueStorageUnavailable(t *testing.T) {
	mock := newMock(t)
	repo := NewReminderRepository(mock)

	mock.ExpectQuery("SELECT id, user_phone, task, remind_at FROM reminders").
		WithArgs(domain.StatusPending, pgxmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FetchDue(context.Background(), time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
