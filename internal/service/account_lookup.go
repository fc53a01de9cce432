package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/repository"
)

type accountLookup struct {
	userRepo repository.UserRepository
}

// NewAccountLookup lets the session manager check that a session's account still exists.
func NewAccountLookup(userRepo repository.UserRepository) auth.AccountLookup {
	return &accountLookup{userRepo: userRepo}
}

func (a *accountLookup) AccountCreatedAt(ctx context.Context, username string) (time.Time, error) {
	user, err := a.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, auth.ErrAccountNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return user.CreatedAt, nil
}
