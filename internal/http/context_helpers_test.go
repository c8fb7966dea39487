package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
)

func TestGetUserSessionFromContext(t *testing.T) {
	// No session
	if s, ok := GetUserSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}

	// With session
	sess := &domainauth.Session{ID: "abc", User: domainauth.UserIdentity{UserID: 1, RoleID: domainauth.RoleStudent}}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)

	// nil leaves the context untouched
	assert.Equal(t, context.Background(), SetSessionInContext(context.Background(), nil))
}

func TestRoleFromContext(t *testing.T) {
	assert.Equal(t, domainauth.RoleUnknown, RoleFromContext(context.Background()))

	coordinator := &domainauth.Session{User: domainauth.UserIdentity{RoleID: domainauth.RoleMarketingCoordinator}}
	assert.Equal(t, domainauth.RoleMarketingCoordinator,
		RoleFromContext(SetSessionInContext(context.Background(), coordinator)))
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", RequestIDFromContext(setRequestID(context.Background(), "req-1")))
}
