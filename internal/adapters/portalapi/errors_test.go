package portalapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/uni-magazine/portal/internal/errors"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    ErrorKind
		message string
		flat    string
		hasMsg  bool
		nFields int
	}{
		{
			name:    "string detail",
			status:  400,
			body:    `{"detail":"Event name already exists"}`,
			kind:    KindMessage,
			message: "Event name already exists",
			flat:    "Event name already exists",
			hasMsg:  true,
		},
		{
			name:    "message wins over string detail",
			status:  409,
			body:    `{"message":"Conflict","detail":"duplicate"}`,
			kind:    KindMessage,
			message: "Conflict",
			flat:    "Conflict",
			hasMsg:  true,
		},
		{
			name:    "list detail without message",
			status:  422,
			body:    `{"detail":[{"loc":["body",0,"title"],"input":null,"msg":"Field required"}]}`,
			kind:    KindFieldErrors,
			flat:    "title: Field required",
			hasMsg:  true,
			nFields: 1,
		},
		{
			name:    "missing detail",
			status:  404,
			body:    `{"message":"Not found"}`,
			kind:    KindMessage,
			message: "Not found",
			flat:    "Not found",
			hasMsg:  true,
		},
		{
			name:    "nested error object",
			status:  400,
			body:    `{"error":{"message":"Bad input","code":"bad_input"}}`,
			kind:    KindMessage,
			message: "Bad input",
			flat:    "Bad input",
			hasMsg:  true,
		},
		{
			name:   "non-json body",
			status: 503,
			body:   `Service Unavailable`,
			kind:   KindMessage,
			flat:   "portal API request failed with status 503",
		},
		{
			name:   "empty body",
			status: 500,
			kind:   KindMessage,
			flat:   "portal API request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := normalizeError("test.op", tt.status, []byte(tt.body))
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.flat, e.Error())
			assert.Equal(t, tt.hasMsg, e.HasMessage())
			assert.Len(t, e.Fields, tt.nFields)
		})
	}
}

func TestNormalizeError_ListDetailLoc(t *testing.T) {
	e := normalizeError("x", 422, []byte(`{"detail":[{"loc":["body",0,"title"],"msg":"Field required"}]}`))
	assert.Equal(t, []string{"body", "0", "title"}, e.Fields[0].Loc)
	assert.Equal(t, "title", e.Fields[0].Field())
	assert.Equal(t, map[string]string{"title": "Field required"}, e.FieldErrors())
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := transportError("events.list", cause)

	assert.Equal(t, KindTransport, e.Kind)
	assert.False(t, e.HasMessage())
	assert.Equal(t, "portal API unreachable: dial tcp: connection refused", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "api_transport", e.ErrorClass())
	assert.Equal(t, apperrors.ErrCodeUnavailable, e.AppError().Code)
}

func TestAsAppError(t *testing.T) {
	assert.Nil(t, AsAppError(nil))

	wrapped := fmt.Errorf("list users: %w", &APIError{Kind: KindMessage, Status: 403, Message: "Forbidden"})
	assert.Equal(t, apperrors.ErrCodeForbidden, AsAppError(wrapped).Code)

	existing := apperrors.NotFound("gone")
	assert.Same(t, existing, AsAppError(existing))

	assert.Equal(t, apperrors.ErrCodeInternal, AsAppError(errors.New("other")).Code)
}

func TestAPIError_Unverified(t *testing.T) {
	assert.True(t, (&APIError{Message: " User is not verified "}).Unverified())
	assert.True(t, (&APIError{Code: "USER_NOT_VERIFIED"}).Unverified())
	assert.False(t, (&APIError{Message: "User is not verified yet"}).Unverified())
}
