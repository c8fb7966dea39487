package httpx

// CurrentPage identifiers shared by handlers and the content template map.
const (
	PageHome = "home"

	// Public account pages.
	PageLogin          = "login"
	PageRegister       = "register"
	PageVerifyOTP      = "verify-otp"
	PageForgotPassword = "forgot-password"
	PageResetPassword  = "reset-password"

	// User management, shared by the four role screens.
	PageUsers       = "users"
	PageUserView    = "user-view"
	PageUserForm    = "user-form"
	PageUserFaculty = "user-faculty"

	PageFaculties   = "faculties"
	PageFacultyForm = "faculty-form"

	// Magazine issues; the API calls them events.
	PageEvents    = "events"
	PageEventView = "event-view"
	PageEventForm = "event-form"

	PageContributions    = "contributions"
	PageContributionView = "contribution-view"
	PageContributionForm = "contribution-form"

	PageForbidden = "forbidden"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates" // from internal/http
)

// Pagination defaults for in-memory list paging.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup
var contentTemplates = map[string]string{
	PageHome:             "home-content",
	PageLogin:            "login-content",
	PageRegister:         "register-content",
	PageVerifyOTP:        "verify-otp-content",
	PageForgotPassword:   "forgot-password-content",
	PageResetPassword:    "reset-password-content",
	PageUsers:            "users-content",
	PageUserView:         "user-view-content",
	PageUserForm:         "user-form-content",
	PageUserFaculty:      "user-faculty-content",
	PageFaculties:        "faculties-content",
	PageFacultyForm:      "faculty-form-content",
	PageEvents:           "events-content",
	PageEventView:        "event-view-content",
	PageEventForm:        "event-form-content",
	PageContributions:    "contributions-content",
	PageContributionView: "contribution-view-content",
	PageContributionForm: "contribution-form-content",
	PageForbidden:        "forbidden-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the home content.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "home-content"
}
