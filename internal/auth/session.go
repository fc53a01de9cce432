package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAccountNotFound is returned by an AccountLookup when no account has the username.
var ErrAccountNotFound = errors.New("account not found")

// AccountLookup reports when the live account named username was created.
type AccountLookup interface {
	AccountCreatedAt(ctx context.Context, username string) (time.Time, error)
}

// SessionManager moves a client session between Anonymous and Authenticated.
type SessionManager struct {
	jwtService *JWTService
	store      SessionStoreInterface
	accounts   AccountLookup
}

// NewSessionManager creates a new session manager.
func NewSessionManager(jwtService *JWTService, store SessionStoreInterface, accounts AccountLookup) *SessionManager {
	return &SessionManager{
		jwtService: jwtService,
		store:      store,
		accounts:   accounts,
	}
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.jwtService.TTL()
}

// Establish starts a session for username and returns the signed cookie value.
func (m *SessionManager) Establish(ctx context.Context, username string) (string, error) {
	account, err := m.accountStamp(ctx, username)
	if err != nil {
		return "", err
	}

	sessionID, token, err := m.jwtService.GenerateSessionToken(username, account)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if err := m.store.Save(ctx, sessionID, username, m.jwtService.TTL()); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps validated claims to an identity. Revoked or unknown sessions,
// and sessions issued to an account that no longer exists, resolve to
// Anonymous; a lookup failure is returned alongside Anonymous.
func (m *SessionManager) Resolve(ctx context.Context, claims *Claims) (Identity, error) {
	if claims == nil || claims.ID == "" || claims.Subject == "" {
		return Anonymous(), nil
	}

	username, err := m.store.Lookup(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return Anonymous(), nil
	}
	if err != nil {
		return Anonymous(), err
	}
	if username != claims.Subject {
		return Anonymous(), nil
	}

	account, err := m.accountStamp(ctx, username)
	if errors.Is(err, ErrAccountNotFound) {
		return Anonymous(), nil
	}
	if err != nil {
		return Anonymous(), err
	}
	if account != claims.Account {
		return Anonymous(), nil
	}
	return Authenticated(username), nil
}

func (m *SessionManager) accountStamp(ctx context.Context, username string) (int64, error) {
	createdAt, err := m.accounts.AccountCreatedAt(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("lookup account: %w", err)
	}
	return createdAt.UnixMicro(), nil
}

// End revokes a single session.
func (m *SessionManager) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}

// EndAll revokes every session of username.
func (m *SessionManager) EndAll(ctx context.Context, username string) error {
	return m.store.DeleteAllForUser(ctx, username)
}
