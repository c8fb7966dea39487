// Package ports defines interfaces (hexagonal ports) for session and portal API behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

// Session lookup failures. Callers treat all of them as "no session".
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionInvalid  = errors.New("session invalid")
)

// SessionStore persists sessions and hands back the opaque token stored in the cookie.
// For the encrypted-cookie store the token is the session itself; for server-side stores
// it is a lookup key.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) (token string, err error)
	Get(ctx context.Context, token string) (domainauth.Session, error)
	Delete(ctx context.Context, token string) error
}

// CredentialAuthenticator exchanges a username and password for a session.
//
// An unverified account is not an error: the returned session has IsAuthenticated=false,
// no bearer token, and only User.UserID set. Implementations never persist the session.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, creds model.Credentials) (domainauth.Session, error)
}
