package domain

import (
	"context"
)

// DefaultTimezone is used for any user without a resolved timezone.
const DefaultTimezone = "UTC"

type User struct {
	Phone    string `db:"phone"`
	Timezone string `db:"timezone"`
}

type UserRepository interface {
	EnsureUser(ctx context.Context, phone string) error
	Timezone(ctx context.Context, phone string) (string, error)
	SetTimezone(ctx context.Context, phone, tz string) error
}
