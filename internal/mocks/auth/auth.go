// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialAuthenticator = (*StubAuthenticator)(nil)
	_ ports.SessionStore            = (*MemorySessionStore)(nil)
)

// StubAuthenticator accepts a fixed set of passwords and flags some accounts as unverified.
type StubAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, creds model.Credentials) (domainauth.Session, error)

	// Users maps username to the identity returned on a successful login.
	Users map[string]domainauth.UserIdentity
	// Password is accepted for every entry in Users.
	Password string
	// Unverified maps username to the user id reported for an unverified account.
	Unverified map[string]int

	mu    sync.Mutex
	calls int
}

// NewStubAuthenticator creates a StubAuthenticator with one active student account.
func NewStubAuthenticator() *StubAuthenticator {
	return &StubAuthenticator{
		Password: "secret",
		Users: map[string]domainauth.UserIdentity{
			"student": {
				UserID:    4,
				UserName:  "student",
				FirstName: "Stu",
				LastName:  "Dent",
				Email:     "student@example.com",
				RoleID:    domainauth.RoleStudent,
				Status:    domainauth.UserStatusActive,
			},
		},
		Unverified: map[string]int{},
	}
}

// Authenticate implements ports.CredentialAuthenticator.
func (s *StubAuthenticator) Authenticate(ctx context.Context, creds model.Credentials) (domainauth.Session, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()

	if s.AuthenticateFunc != nil {
		return s.AuthenticateFunc(ctx, creds)
	}
	if id, ok := s.Unverified[creds.Username]; ok {
		return domainauth.UnverifiedSession(id), nil
	}
	user, ok := s.Users[creds.Username]
	if !ok || creds.Password != s.Password {
		return domainauth.Session{}, ErrInvalidCredentials
	}
	return domainauth.Session{
		BearerToken:     fmt.Sprintf("token-%s-%d", creds.Username, n),
		IsAuthenticated: true,
		User:            user,
	}, nil
}

// Calls returns how many times Authenticate ran.
func (s *StubAuthenticator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MemorySessionStore is an in-memory session store for unit tests.
// Tokens are sequential and never reused.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	next     int
	now      func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      time.Now,
	}
}

// WithClock overrides the clock used for expiry checks.
func (m *MemorySessionStore) WithClock(now func() time.Time) *MemorySessionStore {
	m.now = now
	return m
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess.ID == "" {
		m.next++
		sess.ID = fmt.Sprintf("mem-%d", m.next)
	}
	m.sessions[sess.ID] = sess
	return sess.ID, nil
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if token == "" || !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, token)
		return domainauth.Session{}, ports.ErrSessionExpired
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type invalidCredentialsError struct{}

func (invalidCredentialsError) Error() string { return "Invalid credentials" }

// ErrInvalidCredentials is returned by StubAuthenticator for unknown users or wrong passwords.
var ErrInvalidCredentials error = invalidCredentialsError{}
