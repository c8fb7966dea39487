package httpx

import (
	"context"
	"html"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// Toast types understood by the frontend.
const (
	toastSuccess = "success"
	toastError   = "error"
)

// AuthService is what the UI needs from sign-in.
type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*service.LoginResult, error)
	GetSession(ctx context.Context, token string) (*domainauth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AccountsService covers the public account flows.
type AccountsService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error)
	VerifyOTP(ctx context.Context, userID int, otp string) error
	ResendVerification(ctx context.Context, userID int) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// UsersService is a minimal interface for the user management screens.
type UsersService interface {
	ListByRole(ctx context.Context, sess domainauth.Session, role string) ([]model.User, error)
	Get(ctx context.Context, sess domainauth.Session, id int) (model.User, error)
	Create(ctx context.Context, sess domainauth.Session, req model.CreateUserRequest) (model.User, error)
	Update(ctx context.Context, sess domainauth.Session, id int, req model.UpdateUserRequest) (model.User, error)
	Delete(ctx context.Context, sess domainauth.Session, id int) error
	AssignFaculty(ctx context.Context, sess domainauth.Session, userID, facultyID int) error
}

// FacultiesService is a minimal interface for the faculty screens.
type FacultiesService interface {
	List(ctx context.Context, sess domainauth.Session) ([]model.Faculty, error)
	Get(ctx context.Context, sess domainauth.Session, id int) (model.Faculty, error)
	Create(ctx context.Context, sess domainauth.Session, req model.FacultyRequest) (model.Faculty, error)
	Update(ctx context.Context, sess domainauth.Session, id int, req model.FacultyRequest) (model.Faculty, error)
}

// EventsService is a minimal interface for the magazine screens.
type EventsService interface {
	List(ctx context.Context, sess domainauth.Session) ([]model.Event, error)
	ListOpen(ctx context.Context, sess domainauth.Session, now time.Time) ([]model.Event, error)
	Get(ctx context.Context, sess domainauth.Session, id int) (model.Event, error)
	Create(ctx context.Context, sess domainauth.Session, req model.EventRequest) (model.Event, error)
	Update(ctx context.Context, sess domainauth.Session, id int, req model.EventRequest) (model.Event, error)
	Delete(ctx context.Context, sess domainauth.Session, id int) error
}

// ContributionsService is a minimal interface for the contribution screens.
type ContributionsService interface {
	List(ctx context.Context, sess domainauth.Session, filter model.ContributionFilter) ([]model.Contribution, error)
	Get(ctx context.Context, sess domainauth.Session, id int) (model.Contribution, error)
	Create(ctx context.Context, sess domainauth.Session, req model.ContributionRequest) (model.Contribution, error)
	Update(
		ctx context.Context,
		sess domainauth.Session,
		id int,
		req model.ContributionRequest,
	) (model.Contribution, error)
	Review(
		ctx context.Context,
		sess domainauth.Session,
		id int,
		status model.ContributionStatus,
	) (model.Contribution, error)
	ListComments(ctx context.Context, sess domainauth.Session, contributionID int) ([]model.Comment, error)
	AddComment(ctx context.Context, sess domainauth.Session, contributionID int, content string) (model.Comment, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthService          = (*service.AuthService)(nil)
	_ AccountsService      = (*service.AccountService)(nil)
	_ UsersService         = (*service.UserService)(nil)
	_ FacultiesService     = (*service.FacultyService)(nil)
	_ EventsService        = (*service.EventService)(nil)
	_ ContributionsService = (*service.ContributionService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          AuthService
	Accounts      AccountsService
	Users         UsersService
	Faculties     FacultiesService
	Events        EventsService
	Contributions ContributionsService
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
	// Now drives closure-date checks. Defaults to time.Now.
	Now          func() time.Time
	CookieDomain string
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *UIHandlers) cookies() cookieJar {
	return cookieJar{Domain: h.CookieDomain, Now: h.Now}
}

// session returns the request's session by value. Guarded routes always carry one.
func session(r *http.Request) domainauth.Session {
	if s := GetSessionFromContext(r.Context()); s != nil {
		return *s
	}
	return domainauth.Session{}
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// succeed stores a flash message and redirects.
func (h *UIHandlers) succeed(w http.ResponseWriter, r *http.Request, msg, to string) {
	h.cookies().setFlash(w, r, msg)
	redirect(w, r, to)
}

// failAction reports a failed button-style action (delete, review).
// HTMX callers get a toast and no swap; plain form posts are sent back to fallback with a flash.
func (h *UIHandlers) failAction(w http.ResponseWriter, r *http.Request, err error, action, fallback string) {
	view := describeError(err, action)
	if view.Unauthorized {
		h.expireSession(w, r)
		return
	}
	h.logFailure(r, "ui action failed", err, "action", action)
	if IsHTMX(r) {
		triggerToast(w, view.Message, toastError)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.cookies().setFlash(w, r, view.Message)
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

// expireSession handles a token the API no longer accepts: the session is dropped and the
// user is sent to sign in again, returning to the page they were on.
func (h *UIHandlers) expireSession(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" && h.Auth != nil {
		if err := h.Auth.Logout(r.Context(), token); err != nil {
			h.logger().WarnContext(r.Context(), "logout after rejected token failed", "error", err)
		}
	}
	h.cookies().clear(w, r, SessionCookieName)
	redirectToLogin(w, r)
}

// FormFrameOpts captures the parameters required to normalize common form data.
type FormFrameOpts struct {
	R           *http.Request
	Data        map[string]any
	DefaultMode FormMode
	MetaForMode func(FormMode) PageMeta
}

// prepareFormFrame normalizes common form rendering fields (Errors, Mode, base layout).
// Returns the hydrated data map and the resolved form mode for further customization.
func prepareFormFrame(opts FormFrameOpts) (map[string]any, FormMode) {
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok || data["Errors"] == nil {
		data["Errors"] = map[string]string{}
	}

	mode := resolveFormMode(data["Mode"], opts.DefaultMode)
	data["Mode"] = string(mode)

	if opts.MetaForMode != nil && opts.R != nil {
		maps.Copy(data, basePageData(opts.R, opts.MetaForMode(mode)))
	}

	return data, mode
}

// resolveFormMode coerces assorted Mode representations to a FormMode value.
func resolveFormMode(raw any, fallback FormMode) FormMode {
	switch v := raw.(type) {
	case FormMode:
		if v != "" {
			return v
		}
	case string:
		candidate := FormMode(strings.TrimSpace(v))
		if candidate != "" {
			return candidate
		}
	}
	return fallback
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta PageMeta
	// Action completes "Failed to <action>." when Fetch fails.
	Action string
	Fetch  func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			view := describeError(err, spec.Action)
			if view.Unauthorized {
				h.expireSession(w, r)
				return
			}
			h.logFailure(r, "page data fetch failed", err, "page", spec.Meta.CurrentPage)
			data["ErrorMessage"] = view.Message
			markPageError(data)
		}
	}
	h.renderDashboardPage(w, r, data)
}

// renderDashboardPage renders a dashboard page with proper HTMX partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data any) {
	if m, ok := data.(map[string]any); ok {
		if _, set := m["Flash"]; !set {
			if flash := h.cookies().popFlash(w, r); flash != "" {
				m["Flash"] = flash
			}
		}
	}

	// Handle full page requests first (early return) to reduce nesting
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	// For HTMX requests, render the content plus out-of-band header updates
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Hint client JS to update nav active state based on current path
	HTMX(w).Trigger("nav:activate", map[string]string{"path": r.URL.Path})

	title, pageTitle, current := layoutStrings(data)

	// Include a <title> element so htmx updates document.title on partial swaps
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	// Out-of-band update for the header title
	header := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`
	if _, err := w.Write([]byte(header)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.RenderNamed(w, ContentTemplateFor(current), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}
}

// renderForm adapts renderDashboardPage to FormRenderer.
func (h *UIHandlers) renderForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderDashboardPage(w, r, data)
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = "An unexpected error occurred. Please try again."
}

func layoutStrings(data any) (title, pageTitle, current string) {
	m, ok := data.(map[string]any)
	if !ok {
		return "", "", ""
	}
	title, _ = m["Title"].(string)
	pageTitle, _ = m["PageTitle"].(string)
	current, _ = m["CurrentPage"].(string)
	return title, pageTitle, current
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div class="template-error">
				<h2>Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<pre>` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
