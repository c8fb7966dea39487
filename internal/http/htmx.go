package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial returns true when only the main fragment should be rendered.
// History restores get a partial too; htmx swaps it into the saved layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// HTMXResponse sets htmx response headers.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for htmx response headers.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect sets HX-Redirect and writes 204. Callers must not write afterwards.
func (h *HTMXResponse) Redirect(url string) {
	h.w.Header().Set("Hx-Redirect", url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger sets HX-Trigger to {"<event>": payload}. A nil payload sends true.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	var value any = true
	if payload != nil {
		value = payload
	}
	b, err := json.Marshal(map[string]any{event: value})
	if err != nil {
		b = []byte(`{"` + event + `":true}`)
	}
	h.w.Header().Set("Hx-Trigger", string(b))
	return h
}

// redirect sends the browser to url: HX-Redirect for htmx requests, 303 otherwise.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
