package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/events", nil)
	assert.False(t, IsHTMX(r))
	assert.False(t, WantsPartial(r))

	r.Header.Set("Hx-Request", "TRUE")
	assert.True(t, IsHTMX(r))
	assert.True(t, WantsPartial(r))
}

func TestHTMXResponse_Redirect(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Redirect("/login")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Hx-Redirect"))
}

func TestHTMXResponse_Trigger(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Trigger("showToast", map[string]string{"message": "Saved", "type": "success"})

	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("Hx-Trigger")), &payload))
	assert.Equal(t, "Saved", payload["showToast"]["message"])
	assert.Equal(t, http.StatusOK, rec.Code, "Trigger must not write a status")
}

func TestHTMXResponse_TriggerNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Trigger("refresh", nil)
	assert.JSONEq(t, `{"refresh":true}`, rec.Header().Get("Hx-Trigger"))
}

func TestRedirect(t *testing.T) {
	plain := httptest.NewRequest(http.MethodPost, "/faculties/new", nil)
	rec := httptest.NewRecorder()
	redirect(rec, plain, "/faculties")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/faculties", rec.Header().Get("Location"))

	hx := httptest.NewRequest(http.MethodPost, "/faculties/new", nil)
	hx.Header.Set("Hx-Request", "true")
	rec = httptest.NewRecorder()
	redirect(rec, hx, "/faculties")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/faculties", rec.Header().Get("Hx-Redirect"))
}
