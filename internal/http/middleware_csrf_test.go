package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_IssuesCookieOnSafeRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	c := findCookie(rec.Result().Cookies(), DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, rec.Body.String(), "token is exposed to templates")
	assert.False(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, int(DefaultCSRFCookieTTL.Seconds()), c.MaxAge)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, req)

	assert.Nil(t, findCookie(rec.Result().Cookies(), DefaultCSRFCookieName))
	assert.Equal(t, "existing", rec.Body.String())
}

func TestCSRFProtection_UnsafeMethods(t *testing.T) {
	form := func(v string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/faculties", strings.NewReader(url.Values{"csrf_token": {v}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}
	jsonBody := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/faculties", strings.NewReader(`{"csrf_token":"tok"}`))
		r.Header.Set("Content-Type", "application/json")
		return r
	}
	header := func(method, v string) *http.Request {
		r := httptest.NewRequest(method, "/events/1", nil)
		r.Header.Set(DefaultCSRFHeaderName, v)
		return r
	}

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"missing token", httptest.NewRequest(http.MethodPost, "/x", nil), http.StatusForbidden},
		{"matching header", header(http.MethodPost, "tok"), http.StatusOK},
		{"matching header on delete", header(http.MethodDelete, "tok"), http.StatusOK},
		{"mismatched header", header(http.MethodPut, "other"), http.StatusForbidden},
		{"matching form field", form("tok"), http.StatusOK},
		{"mismatched form field", form("nope"), http.StatusForbidden},
		{"form field ignored for json body", jsonBody(), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRFProtection_SecureCookie(t *testing.T) {
	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "http, HTTPS")

	for name, req := range map[string]*http.Request{"tls": tlsReq, "forwarded": proxied} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, req)
			c := findCookie(rec.Result().Cookies(), DefaultCSRFCookieName)
			require.NotNil(t, c)
			assert.True(t, c.Secure)
		})
	}
}

func TestGetCSRFToken_NoMiddleware(t *testing.T) {
	assert.Empty(t, GetCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil)))
}
