package cookiesession

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
)

const testSecret = "0123456789abcdef-test-secret"

func sampleSession(expires time.Time) domainauth.Session {
	faculty := 3
	return domainauth.Session{
		BearerToken:     "bearer-abc",
		IsAuthenticated: true,
		User: domainauth.UserIdentity{
			UserID:    12,
			UserName:  "coord",
			FirstName: "Cora",
			LastName:  "Ord",
			Email:     "cora@example.com",
			RoleID:    domainauth.RoleMarketingCoordinator,
			Status:    domainauth.UserStatusActive,
			FacultyID: &faculty,
		},
		ExpiresAt: expires,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	store, err := New(testSecret, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	ctx := context.Background()

	sess := sampleSession(now.Add(time.Hour))
	token, err := store.Save(ctx, sess)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v1."))
	assert.NotContains(t, token, "bearer-abc")

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.BearerToken, got.BearerToken)
	assert.Equal(t, sess.User, got.User)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	other, err := store.Save(ctx, sess)
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "fresh nonce per save")
}

func TestStore_TamperedValue(t *testing.T) {
	now := time.Now()
	store, err := New(testSecret)
	require.NoError(t, err)
	ctx := context.Background()

	token, err := store.Save(ctx, sampleSession(now.Add(time.Hour)))
	require.NoError(t, err)

	b := []byte(token)
	last := len(b) - 2
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}
	_, err = store.Get(ctx, string(b))
	require.ErrorIs(t, err, ports.ErrSessionInvalid)

	_, err = store.Get(ctx, "v0.garbage")
	require.ErrorIs(t, err, ports.ErrSessionInvalid)

	_, err = store.Get(ctx, "")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestStore_DifferentSecretCannotOpen(t *testing.T) {
	a, err := New(testSecret)
	require.NoError(t, err)
	b, err := New(testSecret + "-rotated")
	require.NoError(t, err)

	token, err := a.Save(context.Background(), sampleSession(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = b.Get(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrSessionInvalid)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := now
	store, err := New(testSecret, WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	ctx := context.Background()

	token, err := store.Save(ctx, sampleSession(now.Add(time.Minute)))
	require.NoError(t, err)

	clock = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, token)
	require.ErrorIs(t, err, ports.ErrSessionExpired)

	_, err = store.Save(ctx, sampleSession(now))
	require.ErrorIs(t, err, ports.ErrSessionExpired)

	_, err = store.Save(ctx, sampleSession(time.Time{}))
	require.Error(t, err)
}

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := New("short")
	require.Error(t, err)
}
