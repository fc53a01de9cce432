package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/db"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
	logger   zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, cache *cache.Client, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	// Check username and email first so the caller gets a field-specific error
	_, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err == nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	_, err = s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user, err := model.RegisterUser(in.Username, in.Password, in.Email, in.FirstName, in.LastName)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError(map[string]string{
			"password": fmt.Sprintf("Password can't be longer than %d bytes.", auth.MaxPasswordBytes),
		})
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if db.IsDuplicateKey(err) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// A profile cached for an earlier account with this username is stale
	_ = s.cache.Delete(ctx, cache.ProfileKey(user.Username))

	s.logger.Info().Str("user", user.Username).Msg("user registered")
	return user, nil
}

// Login checks credentials and returns the matching user.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidUsername
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.Authenticate(password) {
		s.logger.Debug().Str("user", username).Msg("password mismatch")
		return nil, apperrors.ErrInvalidPassword
	}
	return user, nil
}
