package httpx

import (
	"net/http"

	apperrors "github.com/uni-magazine/portal/internal/errors"
)

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserError(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
		return
	}
	WriteAppError(w, apperrors.NotFound("not found"))
}

// Forbidden renders the in-layout "not available for your role" screen.
// Capability gates hide the links; this covers typed URLs.
func (h *UIHandlers) Forbidden(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Not allowed", PageTitle: "Not allowed", CurrentPage: PageForbidden}).
		With("Message", "This page is not available for your role.").
		Build()
	if !WantsPartial(r) {
		w.WriteHeader(http.StatusForbidden)
	}
	h.renderDashboardPage(w, r, data)
}

// renderBrowserError renders the standalone error page.
func (h *UIHandlers) renderBrowserError(w http.ResponseWriter, r *http.Request, code int, message string) {
	sess := GetSessionFromContext(r.Context())
	data := map[string]any{
		"Title":           http.StatusText(code),
		"Code":            code,
		"Message":         message,
		"IsAuthenticated": sess != nil,
		"LoginURL":        loginURL(r.URL.RequestURI()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if h.T == nil {
		_, _ = w.Write([]byte(http.StatusText(code)))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("error page render failed", "error", err, "status", code)
	}
}
