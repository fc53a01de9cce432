package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

// FeedbackInput carries the editable fields of a post.
type FeedbackInput struct {
	Title   string
	Content string
}

// FeedbackService handles feedback posts on behalf of the acting user.
type FeedbackService interface {
	AuthorizeAdd(rc auth.RequestContext, owner string) error
	Add(ctx context.Context, rc auth.RequestContext, owner string, in FeedbackInput) (*model.Feedback, error)
	Get(ctx context.Context, rc auth.RequestContext, id uint) (*model.Feedback, error)
	Update(ctx context.Context, rc auth.RequestContext, id uint, in FeedbackInput) (*model.Feedback, error)
	Delete(ctx context.Context, rc auth.RequestContext, id uint) (*model.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	logger       zerolog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		logger:       logger.With().Str("component", "feedback_service").Logger(),
	}
}

// AuthorizeAdd reports whether the acting user may post under owner.
func (s *feedbackService) AuthorizeAdd(rc auth.RequestContext, owner string) error {
	if !rc.Identity.IsAuthenticated() {
		return apperrors.ErrNotAuthenticated
	}
	if !auth.CanMutateUser(rc.Identity, owner) {
		return apperrors.ErrAuthorizationDenied
	}
	return nil
}

func (s *feedbackService) Add(ctx context.Context, rc auth.RequestContext, owner string, in FeedbackInput) (*model.Feedback, error) {
	if err := s.AuthorizeAdd(rc, owner); err != nil {
		return nil, err
	}

	post := model.NewFeedback(in.Title, in.Content, owner)
	if err := s.feedbackRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.logger.Info().Str("user", owner).Uint("feedback_id", post.ID).Msg("feedback added")
	return post, nil
}

// Get returns a post for editing. Only the owner may load it.
func (s *feedbackService) Get(ctx context.Context, rc auth.RequestContext, id uint) (*model.Feedback, error) {
	return s.loadOwned(ctx, rc, id)
}

func (s *feedbackService) Update(ctx context.Context, rc auth.RequestContext, id uint, in FeedbackInput) (*model.Feedback, error) {
	post, err := s.loadOwned(ctx, rc, id)
	if err != nil {
		return nil, err
	}

	post.Edit(in.Title, in.Content)
	if err := s.feedbackRepo.Update(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("update feedback: %w", err)
	}

	s.logger.Info().Str("user", post.Username).Uint("feedback_id", post.ID).Msg("feedback updated")
	return post, nil
}

// Delete removes a post and returns it so the caller knows whose page to show.
func (s *feedbackService) Delete(ctx context.Context, rc auth.RequestContext, id uint) (*model.Feedback, error) {
	post, err := s.loadOwned(ctx, rc, id)
	if err != nil {
		return nil, err
	}

	if err := s.feedbackRepo.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("delete feedback: %w", err)
	}

	s.logger.Info().Str("user", post.Username).Uint("feedback_id", post.ID).Msg("feedback deleted")
	return post, nil
}

// loadOwned checks authentication, then existence, then ownership.
func (s *feedbackService) loadOwned(ctx context.Context, rc auth.RequestContext, id uint) (*model.Feedback, error) {
	if !rc.Identity.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}

	post, err := s.feedbackRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}

	if !auth.CanMutateFeedback(rc.Identity, post) {
		s.logger.Warn().Str("acting", rc.Identity.String()).Uint("feedback_id", id).Msg("feedback mutation denied")
		return nil, apperrors.ErrAuthorizationDenied
	}
	return post, nil
}
