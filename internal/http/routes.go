package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"time"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth          AuthService
	Accounts      AccountsService
	Users         UsersService
	Faculties     FacultiesService
	Events        EventsService
	Contributions ContributionsService

	// TemplateFS and StaticFS default to the frontend directory on disk.
	TemplateFS fs.FS
	StaticFS   fs.FS
	// Health is pinged by /healthz when set (redis in production).
	Health HealthChecker

	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
	Now          func() time.Time
}

// NewRouter creates and configures the HTTP router with browser middleware.
// Session resolution and the route guard wrap the router in bootstrap.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	health := &HealthHandlers{Check: services.Health, Logger: logger}
	mux.HandleFunc("GET /healthz", health.Serve)
	mux.HandleFunc("HEAD /healthz", health.Serve)
	mux.Handle("GET /static/", staticWithCacheHeaders(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS(services))))))

	ui := setupUIHandlers(services, logger)
	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})

	if services.Auth != nil {
		auth := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}
		mux.Handle("POST /auth/logout", csrf(http.HandlerFunc(auth.Logout)))
		mux.HandleFunc("GET /auth/status", auth.Status)
	}

	if ui != nil {
		registerUIRoutes(mux, ui, csrf)
	}

	var notFound http.HandlerFunc = http.NotFound
	if ui != nil {
		notFound = ui.NotFound
	}
	mux.Handle("/", notFound)

	return BrowserDetection()(mux)
}

// setupUIHandlers parses templates. It returns nil when they cannot be loaded so the JSON
// routes still come up.
func setupUIHandlers(services RouterServices, logger *slog.Logger) *UIHandlers {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     logger,
		Now:        services.Now,
	})
	if err != nil {
		logger.Error("UI disabled: templates failed to load", "error", err)
		return nil
	}
	return &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Accounts:      services.Accounts,
		Users:         services.Users,
		Faculties:     services.Faculties,
		Events:        services.Events,
		Contributions: services.Contributions,
		IsDev:         services.IsDev,
		Logger:        logger,
		Now:           services.Now,
		CookieDomain:  services.CookieDomain,
	}
}

// templateFS reads from disk in dev mode so template edits show up on reload.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil && !services.IsDev {
		return services.TemplateFS
	}
	return os.DirFS(TemplatePathFromRoot)
}

func staticFS(services RouterServices) fs.FS {
	if services.StaticFS != nil && !services.IsDev {
		return services.StaticFS
	}
	return os.DirFS("frontend/static")
}

//nolint:gochecknoglobals // compiled once
var versionedAsset = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders caches content-hashed assets for a year and everything else not at all.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if versionedAsset.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, csrf func(http.Handler) http.Handler) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, csrf(fn))
	}

	handle("GET /{$}", h.Home)

	registerAccountRoutes(handle, h)
	for _, s := range userScreens {
		registerUserRoutes(handle, h, s)
	}
	registerFacultyRoutes(handle, h)
	registerEventRoutes(handle, h)
	registerContributionRoutes(handle, h)
}

type routeFunc func(pattern string, fn http.HandlerFunc)

func registerAccountRoutes(handle routeFunc, h *UIHandlers) {
	handle("GET /login", h.LoginPage)
	handle("POST /login", h.LoginSubmit)
	handle("GET /register", h.RegisterPage)
	handle("POST /register", h.RegisterSubmit)
	handle("GET /verify-otp", h.VerifyOTPPage)
	handle("POST /verify-otp", h.VerifyOTPSubmit)
	handle("POST /verify-otp/resend", h.ResendVerification)
	handle("GET /forgot-password", h.ForgotPasswordPage)
	handle("POST /forgot-password", h.ForgotPasswordSubmit)
	handle("GET /reset-password", h.ResetPasswordPage)
	handle("POST /reset-password", h.ResetPasswordSubmit)
}

func registerUserRoutes(handle routeFunc, h *UIHandlers, s userScreen) {
	base := s.BasePath
	handle("GET "+base, h.UserList(s))
	handle("POST "+base, h.UserCreate(s))
	handle("GET "+base+"/new", h.UserNew(s))
	handle("GET "+base+"/{id}", h.UserView(s))
	handle("GET "+base+"/{id}/edit", h.UserEdit(s))
	handle("POST "+base+"/{id}/edit", h.UserUpdate(s))
	handle("POST "+base+"/{id}/delete", h.UserDelete(s))
	handle("GET "+base+"/{id}/faculty", h.UserFacultyForm(s))
	handle("POST "+base+"/{id}/faculty", h.UserAssignFaculty(s))
}

func registerFacultyRoutes(handle routeFunc, h *UIHandlers) {
	handle("GET /faculties", h.FacultyList)
	handle("POST /faculties", h.FacultyCreate)
	handle("GET /faculties/new", h.FacultyNew)
	handle("GET /faculties/{id}/edit", h.FacultyEdit)
	handle("POST /faculties/{id}/edit", h.FacultyUpdate)
}

func registerEventRoutes(handle routeFunc, h *UIHandlers) {
	handle("GET /events", h.EventList)
	handle("POST /events", h.EventCreate)
	handle("GET /events/new", h.EventNew)
	handle("GET /events/{id}", h.EventView)
	handle("GET /events/{id}/edit", h.EventEdit)
	handle("POST /events/{id}/edit", h.EventUpdate)
	handle("POST /events/{id}/delete", h.EventDelete)
}

func registerContributionRoutes(handle routeFunc, h *UIHandlers) {
	handle("GET /contributions", h.ContributionList)
	handle("POST /contributions", h.ContributionCreate)
	handle("GET /contributions/new", h.ContributionNew)
	handle("GET /contributions/{id}", h.ContributionView)
	handle("GET /contributions/{id}/edit", h.ContributionEdit)
	handle("POST /contributions/{id}/edit", h.ContributionUpdate)
	handle("POST /contributions/{id}/review", h.ContributionReview)
	handle("POST /contributions/{id}/comments", h.ContributionComment)
}
