package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
	"github.com/uni-magazine/portal/internal/observability/statsd"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *statsd.Recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	rec := &statsd.Recorder{}
	c, err := New(Options{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second, Metrics: rec})
	require.NoError(t, err)
	return c, rec
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	c, err := New(Options{BaseURL: "https://api.example.com/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/users/3", c.endpoint("/users/3", nil))
}

func TestAuthenticate_Success(t *testing.T) {
	c, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds model.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		writeJSON(w, http.StatusOK, `{"token":"tok-123","user":{"user_id":7,"user_name":"alice","role_id":4,"status":"active"}}`)
	}))

	sess, err := c.Authenticate(context.Background(), model.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "tok-123", sess.BearerToken)
	assert.Equal(t, 7, sess.User.UserID)
	assert.Equal(t, domainauth.RoleStudent, sess.Role())

	require.Len(t, rec.Named("api.request"), 1)
	assert.Equal(t, "auth.login", rec.Named("api.request")[0].Tags["operation"])
}

func TestAuthenticate_WrappedAccessToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"access_token":"abc","user":{"user_id":1,"role_id":1}}}`)
	}))

	sess, err := c.Authenticate(context.Background(), model.Credentials{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.BearerToken)
	assert.Equal(t, domainauth.RoleAdmin, sess.Role())
}

func TestAuthenticate_Unverified(t *testing.T) {
	bodies := map[string]string{
		"top level": `{"message":"User is not verified","user_id":42}`,
		"in detail": `{"message":"user is NOT verified","detail":{"user_id":42}}`,
		"in data":   `{"message":"User is not verified","data":{"user_id":"42"}}`,
		"by code":   `{"message":"Account pending","code":"user_not_verified","user_id":42}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusForbidden, body)
			}))

			sess, err := c.Authenticate(context.Background(), model.Credentials{Username: "bob", Password: "pw"})
			require.NoError(t, err)
			assert.False(t, sess.IsAuthenticated)
			assert.Empty(t, sess.BearerToken)
			assert.Equal(t, domainauth.UserIdentity{UserID: 42}, sess.User)
		})
	}
}

func TestAuthenticate_UnverifiedWithoutUserIDIsAnError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"message":"User is not verified"}`)
	}))

	_, err := c.Authenticate(context.Background(), model.Credentials{Username: "bob", Password: "pw"})
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User is not verified", authErr.Message)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
	}))

	_, err := c.Authenticate(context.Background(), model.Credentials{Username: "bob", Password: "bad"})
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestAuthenticate_FallbackMessage(t *testing.T) {
	t.Run("non-json body", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<html>bad gateway</html>")
		}))
		_, err := c.Authenticate(context.Background(), model.Credentials{Username: "x", Password: "y"})
		require.Error(t, err)
		assert.Equal(t, FallbackAuthMessage, err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c, err := New(Options{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Authenticate(context.Background(), model.Credentials{Username: "x", Password: "y"})
		var authErr *AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, FallbackAuthMessage, authErr.Message)
		assert.True(t, IsTransport(err))
	})
}

func TestClient_SendsBearerTokenAndQuery(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/contributions", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("event_id"))
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, `[{"id":1,"title":"Essay","status":"pending","student":{"id":9,"name":"Sam"},"event_id":3}]`)
	}))

	got, err := c.ListContributions(context.Background(), "tok", model.ContributionFilter{
		EventID: 3,
		Status:  model.ContributionPending,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Essay", got[0].Title)
	assert.Equal(t, 9, got[0].Student.ID)
}

func TestClient_UserEndpoints(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users":
			writeJSON(w, http.StatusOK, `{"data":[{"id":1,"user_name":"s1","role":{"id":4,"role_name":"Student"}}]}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/users/1/faculty":
			var body model.AssignFacultyRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 5, body.FacultyID)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, `{"message":"User not found"}`)
		}
	}))
	ctx := context.Background()

	users, err := c.ListUsers(ctx, "tok", "student")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].HasRoleName("student"))

	require.NoError(t, c.AssignFaculty(ctx, "tok", 1, model.AssignFacultyRequest{FacultyID: 5}))
	require.NoError(t, c.DeleteUser(ctx, "tok", 1))

	_, err = c.GetUser(ctx, "tok", 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(AsAppError(err)))
	assert.Equal(t, "User not found", err.Error())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/users?role=student",
		"PUT /api/users/1/faculty",
		"DELETE /api/users/1",
		"GET /api/users/99",
	}, calls)
}

func TestClient_FieldErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{"message":"Validation failed","detail":[
			{"loc":["body","email"],"input":"nope","msg":"value is not a valid email address"},
			{"loc":["body","name"],"input":""}
		]}`)
	}))

	_, err := c.CreateFaculty(context.Background(), "tok", model.FacultyRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindFieldErrors, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, map[string]string{
		"email": "value is not a valid email address",
		"name":  "Invalid value",
	}, apiErr.FieldErrors())
	assert.Equal(t, "Validation failed; email: value is not a valid email address; name: invalid value", apiErr.Error())
	assert.True(t, apperrors.IsValidation(AsAppError(err)))
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, Breaker: BreakerConfig{ConsecutiveFailures: 2, Timeout: time.Minute}})
	require.NoError(t, err)
	ctx := context.Background()

	for range 2 {
		_, err = c.ListEvents(ctx, "tok")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "boom", apiErr.Message)
	}

	_, err = c.ListEvents(ctx, "tok")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.True(t, apperrors.IsUnavailable(AsAppError(err)))
	assert.Equal(t, int32(2), hits.Load(), "open breaker fails fast")
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"nope"}`)
	}))

	for range 10 {
		_, err := c.GetEvent(context.Background(), "tok", 1)
		require.Error(t, err)
		assert.False(t, IsTransport(err))
	}
}

func TestClient_DecodeFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"not-a-number"}`)
	}))

	_, err := c.GetFaculty(context.Background(), "tok", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unexpected response from the portal API.", apiErr.Message)
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListFaculties(ctx, "tok")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.True(t, errors.Is(err, context.Canceled))
}
