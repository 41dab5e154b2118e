package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/kazibot/kazi/internal/domain"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (u *UserRepository) EnsureUser(ctx context.Context, phone string) error {
	query := `INSERT INTO users (phone, timezone)
						VALUES ($1, $2)
						ON CONFLICT (phone) DO NOTHING`
	_, err := u.db.Exec(ctx, query, phone, domain.DefaultTimezone)
	if err != nil {
		return errors.Wrap(err, "ensuring user")
	}
	return nil
}

// Timezone returns the user's resolved timezone identifier, or the default
// when the user is unknown.
func (u *UserRepository) Timezone(ctx context.Context, phone string) (string, error) {
	query := `SELECT timezone FROM users WHERE phone = $1`

	var tz string
	err := u.db.QueryRow(ctx, query, phone).Scan(&tz)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultTimezone, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "fetching user timezone")
	}
	return tz, nil
}

func (u *UserRepository) SetTimezone(ctx context.Context, phone, tz string) error {
	query := `INSERT INTO users (phone, timezone)
						VALUES ($1, $2)
						ON CONFLICT (phone) DO UPDATE SET timezone = EXCLUDED.timezone`
	_, err := u.db.Exec(ctx, query, phone, tz)
	if err != nil {
		return errors.Wrap(err, "updating user timezone")
	}
	return nil
}
