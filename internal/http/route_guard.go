package httpx

import (
	"net/http"
	"strings"
)

// RouteDecision is the guard's verdict for a path.
type RouteDecision int

const (
	RouteAllow RouteDecision = iota
	RouteRedirectHome
	RouteRedirectLogin
)

func (d RouteDecision) String() string {
	switch d {
	case RouteRedirectHome:
		return "redirect_home"
	case RouteRedirectLogin:
		return "redirect_login"
	default:
		return "allow"
	}
}

//nolint:gochecknoglobals // static route tables
var (
	publicPaths = []string{"/login", "/register", "/verify-otp", "/forgot-password", "/reset-password"}

	protectedPrefixes = []string{
		"/contributions", "/coordinators", "/events", "/faculties", "/guests", "/managers", "/students",
	}

	unguardedPrefixes = []string{"/static/", "/api/", "/auth/", "/_"}
	unguardedExact    = []string{"/healthz", "/favicon.ico"}
)

// DecideRoute applies the sign-in rules to path.
// Signed-in users are bounced off public pages; anonymous users are sent to login from
// protected pages. Anything else is allowed.
func DecideRoute(hasSession bool, path string) RouteDecision {
	switch {
	case isUnguardedPath(path):
		return RouteAllow
	case isPublicPath(path):
		if hasSession {
			return RouteRedirectHome
		}
		return RouteAllow
	case isProtectedPath(path):
		if hasSession {
			return RouteAllow
		}
		return RouteRedirectLogin
	default:
		return RouteAllow
	}
}

func isUnguardedPath(path string) bool {
	for _, p := range unguardedExact {
		if path == p {
			return true
		}
	}
	for _, p := range unguardedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if matchesSegment(path, p) {
			return true
		}
	}
	return false
}

func isProtectedPath(path string) bool {
	if path == "/" {
		return true
	}
	for _, p := range protectedPrefixes {
		if matchesSegment(path, p) {
			return true
		}
	}
	return false
}

// matchesSegment reports whether path is prefix or a "/"-separated sub-path of it.
// "/events/3" matches "/events"; "/eventsx" does not.
func matchesSegment(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// RouteGuard enforces DecideRoute using the session placed in the context by Session.
func RouteGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasSession := GetSessionFromContext(r.Context()) != nil
			switch DecideRoute(hasSession, r.URL.Path) {
			case RouteRedirectHome:
				redirect(w, r, "/")
			case RouteRedirectLogin:
				redirectToLogin(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
