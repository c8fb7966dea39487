package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/uni-magazine/portal/internal/adapters/portalapi"
	apperrors "github.com/uni-magazine/portal/internal/errors"
)

// ErrorRenderer is a function that renders an error template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the failure to describe. It may be nil when only FieldErrors are set.
	Err error
	// Action completes "Failed to <action>." for transport and unknown failures.
	Action      string
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data is merged into the template data, e.g. to re-fill a form.
	Data map[string]any
	// StatusCode overrides the response status. Zero keeps 200 for HTMX swaps.
	StatusCode int
	ShowToast  bool
}

// errorView is how a failed portal call is shown to the user.
type errorView struct {
	Message string
	Fields  map[string]string
	Status  int
	// Unauthorized means the API no longer accepts the session's token.
	Unauthorized bool
}

// describeError maps err onto a user-facing message.
//
// Transport failures and unrecognised errors read "Failed to <action>.". Server messages are
// shown verbatim; a field-errors body also fills Fields for inline rendering.
func describeError(err error, action string) errorView {
	if err == nil {
		return errorView{}
	}
	err = apperrors.MapContextError(err)
	appErr := portalapi.AsAppError(err)
	view := errorView{
		Status:       apperrors.HTTPStatus(appErr.Code),
		Unauthorized: apperrors.IsUnauthorized(appErr),
	}

	var apiErr *portalapi.APIError
	var ownErr *apperrors.AppError
	switch {
	case errors.As(err, &apiErr):
		if !apiErr.HasMessage() {
			view.Message = failedTo(action)
			break
		}
		view.Message = apiErr.Error()
		view.Fields = apiErr.FieldErrors()
	case errors.As(err, &ownErr) && !apperrors.IsInternal(ownErr):
		view.Message = ownErr.Message
		if field := apperrors.GetField(ownErr); field != "" {
			view.Fields = map[string]string{field: ownErr.Message}
		}
	default:
		view.Message = failedTo(action)
	}
	if view.Message == "" {
		view.Message = failedTo(action)
	}
	return view
}

// failureLevel is the log level for a failed portal call. Rejections the user can act on
// log at info and an unreachable API at error.
func failureLevel(err error) slog.Level {
	appErr := portalapi.AsAppError(apperrors.MapContextError(err))
	switch {
	case apperrors.IsValidation(appErr), apperrors.IsConflict(appErr),
		apperrors.IsNotFound(appErr), apperrors.IsForbidden(appErr):
		return slog.LevelInfo
	case apperrors.IsUnavailable(appErr):
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// logFailure logs a failed portal call with its error code at failureLevel.
func (h *UIHandlers) logFailure(r *http.Request, msg string, err error, attrs ...any) {
	ctx := r.Context()
	code := apperrors.GetCode(portalapi.AsAppError(apperrors.MapContextError(err)))
	attrs = append(attrs, "error", err, "code", string(code), "request_id", RequestIDFromContext(ctx))
	h.logger().Log(ctx, failureLevel(err), msg, attrs...)
}

func failedTo(action string) string {
	if action == "" {
		return "Something went wrong. Please try again."
	}
	return "Failed to " + action + "."
}

// RenderError renders an error response using consistent error handling patterns.
// Field errors from the API are merged with opts.FieldErrors; the caller's entries win.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)

	view := describeError(opts.Err, opts.Action)
	fields := make(map[string]string, len(view.Fields)+len(opts.FieldErrors))
	for k, v := range view.Fields {
		fields[k] = v
	}
	for k, v := range opts.FieldErrors {
		fields[k] = v
	}
	builder.WithFieldErrors(fields)

	msg := view.Message
	if msg == "" && len(fields) > 0 {
		msg = errMsgFixBelow
	}
	if msg != "" {
		builder.WithError(msg)
	}

	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && view.Message != "" {
		triggerToast(opts.W, view.Message, toastError)
	}
	if opts.StatusCode != 0 {
		opts.W.WriteHeader(opts.StatusCode)
	}

	opts.Renderer(opts.W, opts.R, builder.Build())
}
