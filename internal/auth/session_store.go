package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// SessionKeyPatterns matches every key the session registry writes.
func SessionKeyPatterns() []string {
	return []string{sessionKeyPrefix + "*", userSessionsKeyPrefix + "*"}
}

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStoreInterface defines the live-session registry.
type SessionStoreInterface interface {
	Save(ctx context.Context, sessionID, username string, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (username string, err error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForUser(ctx context.Context, username string) error
}

// SessionStore keeps live sessions in Redis.
type SessionStore struct {
	rdb *redis.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Save records sessionID as a live session of username until ttl elapses.
func (s *SessionStore) Save(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	userKey := userSessionsKeyPrefix + username
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+sessionID, username, ttl)
		pipe.SAdd(ctx, userKey, sessionID)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Lookup returns the username owning sessionID.
func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	username, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return username, nil
}

// Delete removes a single session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	username, err := s.Lookup(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKeyPrefix+sessionID)
		pipe.SRem(ctx, userSessionsKeyPrefix+username, sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every live session of username.
func (s *SessionStore) DeleteAllForUser(ctx context.Context, username string) error {
	userKey := userSessionsKeyPrefix + username
	ids, err := s.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userKey)

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
