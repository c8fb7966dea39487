package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/ports"
	"github.com/uni-magazine/portal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(expires time.Time) domainauth.Session {
	return domainauth.Session{
		BearerToken:     "bearer-1",
		IsAuthenticated: true,
		User: domainauth.UserIdentity{
			UserID:   5,
			UserName: "manager",
			Email:    "manager@example.com",
			RoleID:   domainauth.RoleManager,
		},
		ExpiresAt: expires,
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession(time.Now().Add(30 * time.Minute))
	id, err := store.Save(ctx, session)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(id)
	require.NoError(t, parseErr)

	retrieved, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, retrieved.ID)
	assert.Equal(t, session.BearerToken, retrieved.BearerToken)
	assert.Equal(t, session.User, retrieved.User)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)

	ttl := client.TTL(ctx, "portal:session:"+id).Val()
	assert.True(t, ttl > 0 && ttl <= 30*time.Minute)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(ctx, "")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, ports.ErrSessionInvalid)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	id, err := store.Save(ctx, testSession(time.Now().Add(30*time.Minute)))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	id, err := store.Save(ctx, testSession(time.Now().Add(100*time.Millisecond)))
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	_, err = store.Get(ctx, id)
	require.Error(t, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	id, err := store.Save(ctx, testSession(time.Now().Add(30*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:"+id).Val())
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	_, err := store.Save(context.Background(), testSession(time.Now().Add(-time.Hour)))
	require.ErrorIs(t, err, ports.ErrSessionExpired)
}
