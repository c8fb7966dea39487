package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/uni-magazine/portal/internal/http/validation"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormSubmitter sends a parsed form to the portal API.
type FormSubmitter[T any] func(ctx context.Context, form T) error

// FormRenderer is a function that renders the form template with the given data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	Handler  *UIHandlers
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Parser   FormParser[T]
	Submit   FormSubmitter[T]
	Renderer FormRenderer
	// SuccessURL is where the browser goes after a successful submit.
	SuccessURL string
	// SuccessURLFunc, when set, is called after a successful submit and overrides SuccessURL.
	SuccessURLFunc func() string
	// SuccessMessage is flashed on the next page.
	SuccessMessage string
	// Action completes "Failed to <action>." for transport failures.
	Action   string
	PageMeta PageMeta
	// Optional: additional data to pass to template on error
	ExtraData map[string]any
	// Optional: HTTP status code to set on validation errors (defaults to 200 for HTMX compatibility)
	ErrorStatus int
}

// HandleForm processes a create or edit submission: parse, validate, submit, then redirect on
// success or re-render the form with inline and summary errors.
//
// Usage example:
//
//	HandleForm(FormHandlerOpts[facultyForm]{
//	    Handler: h, W: w, R: r, Mode: FormModeCreate,
//	    Parser: parseFacultyForm,
//	    Submit: func(ctx context.Context, f facultyForm) error { ... },
//	    Renderer: h.renderFacultyForm,
//	    SuccessURL: "/faculties",
//	    Action: "create faculty",
//	})
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if !validateFormOptions(opts) {
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(fieldErrors, "", data)
		return
	}

	if err := opts.Submit(opts.R.Context(), data); err != nil {
		view := describeError(err, opts.Action)
		if view.Unauthorized && opts.Handler != nil {
			opts.Handler.expireSession(opts.W, opts.R)
			return
		}
		if opts.Handler != nil {
			opts.Handler.logFailure(opts.R, "form submit failed", err, "action", opts.Action)
		}
		opts.renderFormError(view.Fields, view.Message, data)
		return
	}

	to := opts.SuccessURL
	if opts.SuccessURLFunc != nil {
		to = opts.SuccessURLFunc()
	}
	if opts.Handler != nil {
		opts.Handler.succeed(opts.W, opts.R, opts.SuccessMessage, to)
		return
	}
	redirect(opts.W, opts.R, to)
}

// validateFormOptions validates required options and mode.
func validateFormOptions[T any](opts FormHandlerOpts[T]) bool {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return false
	}

	switch opts.Mode {
	case FormModeEdit, FormModeCreate:
		return true
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return false
	}
}

// renderFormError renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(fieldErrors map[string]string, generalError string, data T) {
	if fh.ErrorStatus != 0 && len(fieldErrors) > 0 {
		fh.W.WriteHeader(fh.ErrorStatus)
	}

	templateData := NewTemplateData(fh.R, fh.PageMeta).WithFieldErrors(fieldErrors)
	switch {
	case generalError != "":
		templateData.WithError(generalError)
	case len(fieldErrors) > 0:
		templateData.WithError(errMsgFixBelow)
	}
	if generalError != "" {
		triggerToast(fh.W, generalError, toastError)
	}

	templateData.With("Mode", fh.Mode)
	for k, v := range fh.ExtraData {
		templateData.With(k, v)
	}
	// FormData last so extra data cannot shadow the submitted values.
	templateData.With("FormData", data)

	fh.Renderer(fh.W, fh.R, templateData.Build())
}

// postedForm reads values from a parsed POST body.
type postedForm struct{ r *http.Request }

// Get returns the trimmed value of name.
func (p postedForm) Get(name string) string { return strings.TrimSpace(p.r.PostFormValue(name)) }

// Raw returns the value of name untouched, for secrets.
func (p postedForm) Raw(name string) string { return p.r.PostFormValue(name) }

// parseAndValidate fills a form struct from the posted values and validates it.
func parseAndValidate[T any](r *http.Request, fill func(f postedForm) T) (T, map[string]string) {
	if err := r.ParseForm(); err != nil {
		var zero T
		return zero, map[string]string{validation.FormErrorKey: "Invalid form submission."}
	}
	form := fill(postedForm{r: r})
	return form, validation.Struct(form)
}

// formInt parses a positive integer form value; zero means absent or invalid.
func formInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// formDate parses an <input type="date"> value as a UTC midnight.
func formDate(v string) time.Time {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}
	}
	return t
}
