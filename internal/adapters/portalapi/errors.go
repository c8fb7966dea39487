package portalapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/spf13/cast"

	apperrors "github.com/uni-magazine/portal/internal/errors"
)

// ErrorKind tags the shape of a normalized API error.
type ErrorKind string

const (
	// KindMessage is a single human-readable message.
	KindMessage ErrorKind = "message"
	// KindFieldErrors carries per-field validation failures.
	KindFieldErrors ErrorKind = "field_errors"
	// KindTransport means no usable response was received.
	KindTransport ErrorKind = "transport"
)

// Expressions evaluated against decoded error bodies.
const (
	exprMessage = "message || error.message"
	exprDetail  = "detail"
	exprCode    = "code || error.code || detail.code"
	exprUserID  = "user_id || detail.user_id || data.user_id"
)

const (
	codeUserNotVerified = "user_not_verified"
	msgUserNotVerified  = "user is not verified"
)

// FieldError is one entry of a list-shaped `detail`.
type FieldError struct {
	Loc   []string
	Input any
	Msg   string
}

// Field returns the last loc segment, which names the form field.
func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return f.Loc[len(f.Loc)-1]
}

// APIError is the single error type returned for every failed portal API call.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  []FieldError
	// Code is the structured error code when the API sends one.
	Code string
	// UserID is set when the body identifies an account (unverified login).
	UserID int
	Op     string
	cause  error
}

// Error flattens the message and field errors into one line.
func (e *APIError) Error() string {
	parts := make([]string, 0, len(e.Fields)+1)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	for _, f := range e.Fields {
		switch name := f.Field(); {
		case name != "" && f.Msg != "":
			parts = append(parts, name+": "+f.Msg)
		case f.Msg != "":
			parts = append(parts, f.Msg)
		case name != "":
			parts = append(parts, name+": invalid value")
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}
	if e.Kind == KindTransport {
		if e.cause != nil {
			return "portal API unreachable: " + e.cause.Error()
		}
		return "portal API unreachable"
	}
	return fmt.Sprintf("portal API request failed with status %d", e.Status)
}

// Unwrap exposes the transport cause, if any.
func (e *APIError) Unwrap() error { return e.cause }

// ErrorClass tags metrics by kind.
func (e *APIError) ErrorClass() string { return "api_" + string(e.Kind) }

// HasMessage reports whether the server supplied anything human-readable.
func (e *APIError) HasMessage() bool {
	return e.Kind != KindTransport && (e.Message != "" || len(e.Fields) > 0)
}

// FieldErrors maps field names to messages for form re-rendering.
// The first message wins when a field repeats.
func (e *APIError) FieldErrors() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		name := f.Field()
		if name == "" {
			continue
		}
		if _, seen := out[name]; seen {
			continue
		}
		msg := f.Msg
		if msg == "" {
			msg = "Invalid value"
		}
		out[name] = msg
	}
	return out
}

// Unverified reports whether the body flags an account awaiting OTP verification.
func (e *APIError) Unverified() bool {
	if strings.EqualFold(e.Code, codeUserNotVerified) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(e.Message), msgUserNotVerified)
}

// AppError converts e to the application taxonomy, keyed by response status.
func (e *APIError) AppError() *apperrors.AppError {
	code := apperrors.CodeForStatus(e.Status)
	if e.Kind == KindTransport {
		code = apperrors.ErrCodeUnavailable
	}
	return &apperrors.AppError{Code: code, Message: e.Error(), Cause: e}
}

// AsAppError converts any error from this package to an AppError.
// Errors that are not APIErrors become internal errors.
func AsAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.AppError()
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "unexpected portal error")
}

// IsTransport reports whether err is a transport-level APIError.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

func transportError(op string, cause error) *APIError {
	return &APIError{Kind: KindTransport, Op: op, cause: cause}
}

// normalizeError builds an APIError from a non-2xx response.
// detail may be a string, a list of {loc, input, msg} or absent.
func normalizeError(op string, status int, body []byte) *APIError {
	e := &APIError{Kind: KindMessage, Status: status, Op: op}

	var doc any
	if len(body) == 0 || json.Unmarshal(body, &doc) != nil {
		return e
	}
	if _, isObject := doc.(map[string]any); !isObject {
		if s, ok := doc.(string); ok {
			e.Message = strings.TrimSpace(s)
		}
		return e
	}

	e.Message = searchString(exprMessage, doc)
	e.Code = searchString(exprCode, doc)
	e.UserID = searchInt(exprUserID, doc)

	switch detail := search(exprDetail, doc).(type) {
	case string:
		if e.Message == "" {
			e.Message = strings.TrimSpace(detail)
		}
	case []any:
		e.Fields = parseFieldErrors(detail)
		if len(e.Fields) > 0 {
			e.Kind = KindFieldErrors
		}
	case map[string]any:
		if e.Message == "" {
			e.Message = searchString("message || msg", detail)
		}
	}
	return e
}

func parseFieldErrors(items []any) []FieldError {
	out := make([]FieldError, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			if s, isStr := item.(string); isStr && s != "" {
				out = append(out, FieldError{Msg: s})
			}
			continue
		}
		fe := FieldError{
			Input: entry["input"],
			Msg:   searchString("msg || message", entry),
		}
		if loc, isList := entry["loc"].([]any); isList {
			for _, seg := range loc {
				fe.Loc = append(fe.Loc, scalarString(seg))
			}
		} else if s := scalarString(entry["loc"]); s != "" {
			fe.Loc = []string{s}
		}
		out = append(out, fe)
	}
	return out
}

func search(expr string, doc any) any {
	v, err := jmespath.Search(expr, doc)
	if err != nil {
		return nil
	}
	return v
}

func searchString(expr string, doc any) string {
	if s, ok := search(expr, doc).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func searchInt(expr string, doc any) int {
	v := search(expr, doc)
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// scalarString renders a JSON scalar; objects and arrays become "".
func scalarString(v any) string {
	return cast.ToString(v)
}

// AuthenticationError is returned for every failed login that is not an unverified account.
type AuthenticationError struct {
	Message string
	Err     error
}

// FallbackAuthMessage is shown when the API gave no usable reason.
const FallbackAuthMessage = "Unable to sign in. Please try again."

func (e *AuthenticationError) Error() string { return e.Message }

// Unwrap exposes the underlying APIError.
func (e *AuthenticationError) Unwrap() error { return e.Err }
