package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}


// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, post *model.Feedback) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, post *model.Feedback) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByOwner(ctx context.Context, username string) ([]model.Feedback, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

// MockSessionRevoker is a mock implementation of SessionRevoker.
type MockSessionRevoker struct {
	mock.Mock
}

func (m *MockSessionRevoker) EndAll(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func noSessions() *MockSessionRevoker {
	m := new(MockSessionRevoker)
	m.On("EndAll", mock.Anything, mock.Anything).Return(nil)
	return m
}

func actingAs(username string) auth.RequestContext {
	return auth.RequestContext{Identity: auth.Authenticated(username)}
}

func anonymous() auth.RequestContext {
	return auth.RequestContext{Identity: auth.Anonymous()}
}
