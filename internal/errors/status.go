package errors

import (
	"context"
	"errors"
	"net/http"
)

// CodeForStatus maps a portal API response status onto an ErrorCode.
// Status 0 means no response was received.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == 0:
		return ErrCodeUnavailable
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrCodeTimeout
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case status >= 400 && status < 500:
		return ErrCodeValidation
	default:
		return ErrCodeInternal
	}
}

// HTTPStatus is the status a handler responds with for code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUnavailable:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// MapContextError converts context cancellation and deadline errors to AppErrors.
// Other errors are returned unchanged.
func MapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	default:
		return err
	}
}
