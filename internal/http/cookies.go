package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cookie names.
const (
	SessionCookieName = "portal_session"
	FlashCookieName   = "portal_flash"
)

const flashMaxAge = 60 // seconds

// cookieJar writes the portal's cookies with shared attributes.
type cookieJar struct {
	Domain string
	Now    func() time.Time
}

func (c cookieJar) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// setSession writes the session cookie; Max-Age follows the session expiry.
func (c cookieJar) setSession(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(c.now()).Seconds())
	if maxAge <= 0 {
		c.clear(w, r, SessionCookieName)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear expires a cookie, mirroring the attributes it was set with.
func (c cookieJar) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-shot success message shown after the next full page load.
func (c cookieJar) setFlash(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   flashMaxAge,
	})
}

// popFlash returns the pending flash message and clears it.
func (c cookieJar) popFlash(w http.ResponseWriter, r *http.Request) string {
	ck, err := r.Cookie(FlashCookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.clear(w, r, FlashCookieName)
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

// sessionToken returns the session cookie value, or "".
func sessionToken(r *http.Request) string {
	ck, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	// Browsers read a backslash as a slash, so "/\host" is protocol-relative.
	if strings.Contains(candidate, "\\") {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}

// loginURL builds the login redirect that returns the user to from afterwards.
func loginURL(from string) string {
	if from == "" {
		return "/login"
	}
	return "/login?" + url.Values{"redirectFrom": {from}}.Encode()
}
