// Package cookiesession keeps the whole session inside an encrypted cookie value.
// Nothing is stored server-side, so Delete only has to clear the cookie.
package cookiesession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
)

// MinSecretLength guards against trivially guessable secrets.
const MinSecretLength = 16

// CookieName is bound into every ciphertext.
const CookieName = "portal_session"

var _ ports.SessionStore = (*Store)(nil)

// Store implements ports.SessionStore with AES-256-GCM sealed cookie values.
type Store struct {
	sealer *sealer
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a Store keyed from secret.
func New(secret string, opts ...Option) (*Store, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters", MinSecretLength)
	}
	sl, err := newSealer(deriveKey(secret), CookieName)
	if err != nil {
		return nil, err
	}
	s := &Store{sealer: sl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save seals sess and returns the cookie value.
func (s *Store) Save(_ context.Context, sess domainauth.Session) (string, error) {
	if sess.ExpiresAt.IsZero() {
		return "", errors.New("session expiry is required")
	}
	if sess.Expired(s.now()) {
		return "", ports.ErrSessionExpired
	}
	plain, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	return s.sealer.seal(plain)
}

// Get opens a cookie value. Tampered or foreign values yield ports.ErrSessionInvalid.
func (s *Store) Get(_ context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	plain, err := s.sealer.open(token)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("%w: %w", ports.ErrSessionInvalid, err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("%w: %w", ports.ErrSessionInvalid, err)
	}
	if sess.ExpiresAt.IsZero() || sess.Expired(s.now()) {
		return domainauth.Session{}, ports.ErrSessionExpired
	}
	return sess, nil
}

// Delete is a no-op; the handler clears the cookie.
func (s *Store) Delete(context.Context, string) error { return nil }
