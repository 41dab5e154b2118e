package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kazibot/kazi/internal/domain"
	"github.com/kazibot/kazi/internal/utils"
)

var (
	ErrPhoneEmpty      = errors.New("phone cannot be empty")
	ErrUnknownTimezone = errors.New("unknown timezone")
)

type UserUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(userRepo domain.UserRepository) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
	}
}

func (u *UserUsecase) EnsureUser(ctx context.Context, phone string) error {
	if phone == "" {
		return ErrPhoneEmpty
	}
	return u.userRepo.EnsureUser(ctx, phone)
}

func (u *UserUsecase) Timezone(ctx context.Context, phone string) (string, error) {
	return u.userRepo.Timezone(ctx, phone)
}

// SetTimezone stores a resolved timezone for the user. The input is either an
// IANA identifier or one of the known city aliases; anything else is
// rejected with ErrUnknownTimezone.
func (u *UserUsecase) SetTimezone(ctx context.Context, phone, input string) (string, error) {
	if phone == "" {
		return "", ErrPhoneEmpty
	}
	if strings.TrimSpace(input) == "" {
		return "", ErrUnknownTimezone
	}

	tz := input
	if _, err := time.LoadLocation(tz); err != nil {
		alias, ok := utils.LookupZone(input)
		if !ok {
			return "", ErrUnknownTimezone
		}
		tz = alias
	}

	if err := u.userRepo.SetTimezone(ctx, phone, tz); err != nil {
		return "", err
	}
	return tz, nil
}
