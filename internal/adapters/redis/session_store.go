package redis

// Package redis provides Redis-based adapters for the client portal.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

const (
	defaultSessionPrefix = "portal:session:"
	defaultUserPrefix    = "portal:user_sessions:"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// ErrSessionExpired is returned by Save for sessions already past ExpiresAt.
var ErrSessionExpired = errors.New("session is expired")

// SessionStore keeps sessions as JSON with a TTL matching ExpiresAt, plus a
// per-user index set so every session of a user can be revoked at once.
type SessionStore struct {
	client     redis.UniversalClient
	prefix     string
	userPrefix string
	now        func() time.Time
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithKeyPrefix overrides the session and user index key prefixes.
func WithKeyPrefix(session, user string) SessionStoreOption {
	return func(s *SessionStore) {
		s.prefix = session
		s.userPrefix = user
	}
}

// WithClock overrides the clock used for TTL computation.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) { s.now = now }
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		client:     client,
		prefix:     defaultSessionPrefix,
		userPrefix: defaultUserPrefix,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+sess.ID, data, ttl)
		if sess.UserID != "" {
			idx := s.userPrefix + sess.UserID
			pipe.SAdd(ctx, idx, sess.ID)
			// Sessions share one TTL, so the last save carries the latest expiry.
			pipe.Expire(ctx, idx, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes one session. Unknown ids are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// DeleteForUser revokes every session indexed under userID and returns how many existed.
func (s *SessionStore) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	idx := s.userPrefix + userID
	ids, err := s.client.SMembers(ctx, idx).Result()
	if err != nil {
		return 0, fmt.Errorf("redis list user sessions: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.prefix+id)
	}

	var deleted *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			deleted = pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, idx)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis revoke user sessions: %w", err)
	}
	if deleted == nil {
		return 0, nil
	}
	return deleted.Val(), nil
}
