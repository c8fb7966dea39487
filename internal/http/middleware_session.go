package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
)

// SessionResolver turns a session cookie into a valid session.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*domainauth.Session, error)
}

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Sessions     SessionResolver
	CookieDomain string
	Logger       *slog.Logger
}

// Session resolves the session cookie once per request and stores the result in the context.
// A rejected cookie (bad signature, unknown id, expired) is cleared. A store failure keeps the
// cookie so the user is still signed in once the store recovers. Either way the request
// continues anonymously.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jar := cookieJar{Domain: cfg.CookieDomain}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" || cfg.Sessions == nil {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := cfg.Sessions.GetSession(r.Context(), token)
			if err != nil && !isSessionRejection(err) {
				logger.WarnContext(r.Context(), "session lookup failed",
					"error", err, "request_id", RequestIDFromContext(r.Context()))
				next.ServeHTTP(w, r)
				return
			}
			if err != nil || sess == nil || !sess.IsAuthenticated {
				logger.DebugContext(r.Context(), "session cookie rejected",
					"error", err, "request_id", RequestIDFromContext(r.Context()))
				jar.clear(w, r, SessionCookieName)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// isSessionRejection reports whether err means the cookie itself is no good.
func isSessionRejection(err error) bool {
	return errors.Is(err, ports.ErrSessionNotFound) ||
		errors.Is(err, ports.ErrSessionExpired) ||
		errors.Is(err, ports.ErrSessionInvalid)
}

// redirectToLogin sends the browser to the login page, remembering where it came from.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, loginURL(redirectPathForRequest(r)))
}

// redirectPathForRequest is the page to return to after signing in.
// HTMX requests name the page in HX-Current-URL; other non-GET requests fall back to the referer.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}

	// For absolute URLs, use just the path/query portion to keep redirects within the app.
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}

	return safeRedirectPath(raw)
}
