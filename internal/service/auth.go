package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
	"github.com/uni-magazine/portal/internal/observability/metrics"
	"github.com/uni-magazine/portal/internal/observability/statsd"
	"github.com/uni-magazine/portal/internal/ports"
)

// Login outcomes used as the auth.login metric tag.
const (
	loginSuccess    = "success"
	loginUnverified = "unverified"
	loginRejected   = "rejected"
	loginError      = "error"
)

// AuthConfig holds optional AuthService settings.
type AuthConfig struct {
	// TTL is the absolute session lifetime. Zero means domainauth.DefaultSessionTTL.
	TTL     time.Duration
	Metrics statsd.Sink
	Logger  *slog.Logger
	Now     func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Authenticator ports.CredentialAuthenticator
	Sessions      ports.SessionStore
	Config        AuthConfig
}

// AuthService exchanges credentials for sessions and persists them.
type AuthService struct {
	authenticator ports.CredentialAuthenticator
	sessions      ports.SessionStore
	ttl           time.Duration
	metrics       statsd.Sink
	logger        *slog.Logger
	now           func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Authenticator == nil {
		panic("CredentialAuthenticator is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}
	cfg := opts.Config
	if cfg.TTL <= 0 {
		cfg.TTL = domainauth.DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: opts.Authenticator,
		sessions:      opts.Sessions,
		ttl:           cfg.TTL,
		metrics:       cfg.Metrics,
		logger:        logger.With("component", "auth_service"),
		now:           cfg.Now,
	}
}

// LoginResult is the outcome of a credential exchange.
type LoginResult struct {
	Session domainauth.Session
	// Token is the opaque value to store in the session cookie. Empty when Unverified.
	Token string
	// Unverified is set for accounts still awaiting OTP verification; nothing was persisted.
	Unverified bool
}

// Login exchanges credentials for a session and persists it.
//
// Unverified accounts are not errors: the result carries only the user id and no session
// is saved. Rejected credentials surface the authenticator's error unchanged.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*LoginResult, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	sess, err := s.authenticator.Authenticate(ctx, creds)
	if err != nil {
		outcome := loginRejected
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = loginError
		}
		metrics.EmitLogin(s.metrics, outcome)
		return nil, err
	}

	if !sess.IsAuthenticated {
		metrics.EmitLogin(s.metrics, loginUnverified)
		s.logger.InfoContext(ctx, "login deferred to OTP verification", "user_id", sess.User.UserID)
		return &LoginResult{Session: sess, Unverified: true}, nil
	}

	sess.ExpiresAt = s.sessionExpiry(sess.BearerToken)
	if !sess.ExpiresAt.After(s.now()) {
		metrics.EmitLogin(s.metrics, loginError)
		return nil, apperrors.Unauthorized("the portal API issued an expired token")
	}

	token, err := s.sessions.Save(ctx, sess)
	if err != nil {
		metrics.EmitLogin(s.metrics, loginError)
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.EmitLogin(s.metrics, loginSuccess)
	s.logger.InfoContext(ctx, "user signed in",
		"user_id", sess.User.UserID, "role", sess.User.RoleID.String())
	return &LoginResult{Session: sess, Token: token}, nil
}

// GetSession resolves a cookie token to a valid, authenticated session.
// A rejected token wraps one of the ports.ErrSession* sentinels; store failures do not.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := s.now()
	if sess.Expired(now) {
		if delErr := s.sessions.Delete(ctx, token); delErr != nil {
			return nil, errors.Join(ports.ErrSessionExpired, fmt.Errorf("delete session: %w", delErr))
		}
		return nil, ports.ErrSessionExpired
	}
	if !sess.Valid(now) {
		return nil, ports.ErrSessionInvalid
	}
	return &sess, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// sessionExpiry returns now+TTL, capped by the bearer token's exp claim when the token is a JWT.
// The signature is not checked; only the portal API can verify its own tokens.
func (s *AuthService) sessionExpiry(bearer string) time.Time {
	expiry := s.now().Add(s.ttl)
	if exp, ok := tokenExpiry(bearer); ok && exp.Before(expiry) {
		return exp
	}
	return expiry
}

func tokenExpiry(bearer string) (time.Time, bool) {
	if strings.Count(bearer, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(bearer, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
