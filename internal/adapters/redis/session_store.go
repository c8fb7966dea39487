// Package redis provides Redis-backed adapters: server-side sessions and the query cache store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in Redis under a random id; the cookie carries only the id.
// Redis TTL follows the session's ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "portal:session:")
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix, now: time.Now}
}

// Save stores sess and returns its id. A session without an id gets a fresh uuid.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) (string, error) {
	if sess.ExpiresAt.IsZero() {
		return "", errors.New("session expiry is required")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return "", ports.ErrSessionExpired
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session: %w", err)
	}
	return sess.ID, nil
}

// Get loads the session stored under id.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return domainauth.Session{}, ports.ErrSessionInvalid
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("%w: %w", ports.ErrSessionInvalid, err)
	}

	// Redis TTL should have evicted it already; clock skew can leave a short window.
	if sess.Expired(s.now()) {
		if delErr := s.Delete(ctx, id); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", delErr)
		}
		return domainauth.Session{}, ports.ErrSessionExpired
	}
	return sess, nil
}

// Delete removes the session. Unknown ids are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
