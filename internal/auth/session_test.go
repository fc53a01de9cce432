package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, username, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteAllForUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockAccountLookup is a mock implementation of AccountLookup.
type MockAccountLookup struct {
	mock.Mock
}

func (m *MockAccountLookup) AccountCreatedAt(ctx context.Context, username string) (time.Time, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(time.Time), args.Error(1)
}

var aliceCreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func claimsFor(id, subject string) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: id, Subject: subject},
		Account:          aliceCreatedAt.UnixMicro(),
	}
}

func liveAlice() *MockAccountLookup {
	accounts := new(MockAccountLookup)
	accounts.On("AccountCreatedAt", mock.Anything, "alice").Return(aliceCreatedAt, nil)
	return accounts
}

func TestSessionManager_Establish(t *testing.T) {
	store := new(MockSessionStore)
	jwtService := NewJWTService("test-secret", time.Hour)
	store.On("Save", mock.Anything, mock.AnythingOfType("string"), "alice", time.Hour).Return(nil)

	manager := NewSessionManager(jwtService, store, liveAlice())
	token, err := manager.Establish(context.Background(), "alice")
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, aliceCreatedAt.UnixMicro(), claims.Account)
	store.AssertExpectations(t)
}

func TestSessionManager_EstablishStoreFailure(t *testing.T) {
	store := new(MockSessionStore)
	store.On("Save", mock.Anything, mock.Anything, "alice", mock.Anything).Return(errors.New("redis down"))

	manager := NewSessionManager(NewJWTService("test-secret", time.Hour), store, liveAlice())
	token, err := manager.Establish(context.Background(), "alice")
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestSessionManager_EstablishUnknownAccount(t *testing.T) {
	store := new(MockSessionStore)
	accounts := new(MockAccountLookup)
	accounts.On("AccountCreatedAt", mock.Anything, "ghost").Return(time.Time{}, ErrAccountNotFound)

	manager := NewSessionManager(NewJWTService("test-secret", time.Hour), store, accounts)
	token, err := manager.Establish(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, token)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionManager_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		claims    *Claims
		setupMock func(*MockSessionStore)
		accounts  func() *MockAccountLookup
		want      Identity
		wantErr   bool
	}{
		{
			name:   "live session",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("alice", nil)
			},
			accounts: liveAlice,
			want:     Authenticated("alice"),
		},
		{
			name:   "account deleted",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("alice", nil)
			},
			accounts: func() *MockAccountLookup {
				a := new(MockAccountLookup)
				a.On("AccountCreatedAt", mock.Anything, "alice").Return(time.Time{}, ErrAccountNotFound)
				return a
			},
			want: Anonymous(),
		},
		{
			name:   "username registered again",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("alice", nil)
			},
			accounts: func() *MockAccountLookup {
				a := new(MockAccountLookup)
				a.On("AccountCreatedAt", mock.Anything, "alice").Return(aliceCreatedAt.Add(time.Hour), nil)
				return a
			},
			want: Anonymous(),
		},
		{
			name:   "account lookup failure fails closed",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("alice", nil)
			},
			accounts: func() *MockAccountLookup {
				a := new(MockAccountLookup)
				a.On("AccountCreatedAt", mock.Anything, "alice").Return(time.Time{}, errors.New("db down"))
				return a
			},
			want:    Anonymous(),
			wantErr: true,
		},
		{
			name:   "revoked session",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("", ErrSessionNotFound)
			},
			want: Anonymous(),
		},
		{
			name:   "subject mismatch",
			claims: claimsFor("sid-1", "mallory"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("alice", nil)
			},
			want: Anonymous(),
		},
		{
			name:   "registry failure fails closed",
			claims: claimsFor("sid-1", "alice"),
			setupMock: func(m *MockSessionStore) {
				m.On("Lookup", mock.Anything, "sid-1").Return("", errors.New("redis down"))
			},
			want:    Anonymous(),
			wantErr: true,
		},
		{
			name:      "no claims",
			claims:    nil,
			setupMock: func(m *MockSessionStore) {},
			want:      Anonymous(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockSessionStore)
			tt.setupMock(store)
			accounts := new(MockAccountLookup)
			if tt.accounts != nil {
				accounts = tt.accounts()
			}

			manager := NewSessionManager(NewJWTService("test-secret", time.Hour), store, accounts)
			identity, err := manager.Resolve(context.Background(), tt.claims)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, identity)
			store.AssertExpectations(t)
			accounts.AssertExpectations(t)
		})
	}
}

func TestSessionManager_EndAndEndAll(t *testing.T) {
	store := new(MockSessionStore)
	store.On("Delete", mock.Anything, "sid-1").Return(nil)
	store.On("DeleteAllForUser", mock.Anything, "alice").Return(nil)

	manager := NewSessionManager(NewJWTService("test-secret", time.Hour), store, new(MockAccountLookup))
	require.NoError(t, manager.End(context.Background(), "sid-1"))
	require.NoError(t, manager.End(context.Background(), ""))
	require.NoError(t, manager.EndAll(context.Background(), "alice"))

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 1)
}
