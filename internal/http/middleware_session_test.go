package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
	"github.com/uni-magazine/portal/internal/testutil"
)

func TestSessionMiddleware(t *testing.T) {
	valid := testutil.SessionFor(domainauth.RoleManager, 3)
	unverified := domainauth.UnverifiedSession(8)

	resolver := &fakeAuth{getSessionFn: func(_ context.Context, token string) (*domainauth.Session, error) {
		switch token {
		case "good":
			return &valid, nil
		case "unverified":
			return &unverified, nil
		case "expired":
			return nil, ports.ErrSessionExpired
		case "tampered":
			return nil, fmt.Errorf("get session: %w: %w", ports.ErrSessionInvalid, errors.New("cipher: message authentication failed"))
		case "store-down":
			return nil, fmt.Errorf("get session: %w", errors.New("dial tcp 10.0.0.5:6379: connect: connection refused"))
		default:
			return nil, fmt.Errorf("get session: %w", ports.ErrSessionNotFound)
		}
	}}

	var seen *domainauth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Session(SessionConfig{Sessions: resolver, Logger: discardLogger()})(next)

	tests := []struct {
		name        string
		token       string
		wantSession bool
		wantCleared bool
	}{
		{name: "no cookie", token: ""},
		{name: "valid cookie", token: "good", wantSession: true},
		{name: "unknown cookie", token: "bogus", wantCleared: true},
		{name: "expired cookie", token: "expired", wantCleared: true},
		{name: "tampered cookie", token: "tampered", wantCleared: true},
		{name: "unverified session", token: "unverified", wantCleared: true},
		{name: "store outage keeps the cookie", token: "store-down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				r = withSessionCookie(r, tt.token)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code)
			if tt.wantSession {
				require.NotNil(t, seen)
				assert.Equal(t, 3, seen.User.UserID)
			} else {
				assert.Nil(t, seen)
			}
			if tt.wantCleared {
				assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookieName+"=;")
			} else {
				assert.Empty(t, w.Header().Get("Set-Cookie"))
			}
		})
	}
}

func TestRedirectPathForRequest(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		headers map[string]string
		want    string
	}{
		{name: "get keeps request uri", method: http.MethodGet, target: "/events?page=2", want: "/events?page=2"},
		{name: "post uses referer path", method: http.MethodPost, target: "/events",
			headers: map[string]string{"Referer": "https://portal.example.edu/events/4"}, want: "/events/4"},
		{name: "post without referer goes home", method: http.MethodPost, target: "/events", want: "/"},
		{name: "htmx current url", method: http.MethodGet, target: "/x",
			headers: map[string]string{"Hx-Request": "true", "Hx-Current-Url": "/contributions/1"}, want: "/contributions/1"},
		{name: "scheme relative referer rejected", method: http.MethodPost, target: "/events",
			headers: map[string]string{"Referer": "//evil.example.com/"}, want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, redirectPathForRequest(r))
		})
	}
}
