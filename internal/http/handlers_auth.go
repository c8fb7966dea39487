package httpx

import (
	"log/slog"
	"net/http"
	"strings"
)

// AuthHandlers provides the JSON and redirect endpoints under /auth/.
type AuthHandlers struct {
	Svc          AuthService
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) cookies() cookieJar { return cookieJar{Domain: h.CookieDomain} }

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.Svc.Logout(r.Context(), token); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.cookies().clear(w, r, SessionCookieName)

	const signedOut = "/login"
	isJSON := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	if isJSON && !IsHTMX(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": signedOut,
		})
		return
	}
	redirect(w, r, signedOut)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	sess, err := h.Svc.GetSession(r.Context(), token)
	if err != nil && !isSessionRejection(err) {
		h.logger().WarnContext(r.Context(), "session lookup failed", "error", err)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	if err != nil || sess == nil || !sess.IsAuthenticated {
		h.cookies().clear(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	role := sess.Role()
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         sess.User.UserID,
			"user_name":  sess.User.UserName,
			"first_name": sess.User.FirstName,
			"last_name":  sess.User.LastName,
			"email":      sess.User.Email,
			"role":       role.Name(),
			"role_label": role.Label(),
		},
		"expires_at": sess.ExpiresAt,
	})
}
