package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// Profile is a user together with the posts they own.
type Profile struct {
	User     *model.User      `json:"user"`
	Feedback []model.Feedback `json:"feedback"`
}

// UserService exposes account level operations.
type UserService interface {
	GetProfile(ctx context.Context, rc auth.RequestContext, username string) (*Profile, error)
	DeleteUser(ctx context.Context, rc auth.RequestContext, username string) error
}

// SessionRevoker ends every live session of a user.
type SessionRevoker interface {
	EndAll(ctx context.Context, username string) error
}

type userService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
	sessions     SessionRevoker
	cache        *cache.Client
	logger       zerolog.Logger
}

// NewUserService builds a UserService with repositories, the session registry and cache.
func NewUserService(
	userRepo repository.UserRepository,
	feedbackRepo repository.FeedbackRepository,
	sessions SessionRevoker,
	cache *cache.Client,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		sessions:     sessions,
		cache:        cache,
		logger:       logger.With().Str("component", "user_service").Logger(),
	}
}

// GetProfile returns a user and their feedback. Any logged-in user may view
// any profile.
func (s *userService) GetProfile(ctx context.Context, rc auth.RequestContext, username string) (*Profile, error) {
	if !rc.Identity.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}
	if !auth.CanView(rc.Identity, username) {
		return nil, apperrors.ErrAuthorizationDenied
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.feedbackRepo.ListByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return &Profile{User: user, Feedback: posts}, nil
}

func (s *userService) findUser(ctx context.Context, username string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, cache.ProfileKey(username), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.cache.SetJSON(ctx, cache.ProfileKey(username), user, profileCacheTTL)
	return user, nil
}

// DeleteUser removes the acting user's own account and all their feedback.
// Sessions are revoked first; if that fails the account is left intact.
func (s *userService) DeleteUser(ctx context.Context, rc auth.RequestContext, username string) error {
	if !rc.Identity.IsAuthenticated() {
		return apperrors.ErrNotAuthenticated
	}
	if !auth.CanMutateUser(rc.Identity, username) {
		s.logger.Warn().Str("acting", rc.Identity.String()).Str("target", username).Msg("delete user denied")
		return apperrors.ErrAuthorizationDenied
	}

	if err := s.sessions.EndAll(ctx, username); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.ProfileKey(username))
	s.logger.Info().Str("user", username).Msg("user deleted")
	return nil
}
