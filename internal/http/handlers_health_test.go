package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandlers(t *testing.T) {
	down := HealthCheckFunc(func(context.Context) error { return errors.New("redis down") })
	up := HealthCheckFunc(func(context.Context) error { return nil })

	tests := []struct {
		name     string
		method   string
		check    HealthChecker
		wantCode int
		wantBody string
	}{
		{name: "no dependency", method: http.MethodGet, wantCode: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "dependency up", method: http.MethodGet, check: up, wantCode: http.StatusOK, wantBody: `{"status":"ok"}`},
		{
			name: "dependency down", method: http.MethodGet, check: down,
			wantCode: http.StatusServiceUnavailable, wantBody: `{"status":"degraded"}`,
		},
		{name: "head has no body", method: http.MethodHead, check: up, wantCode: http.StatusOK},
		{name: "head reports failure", method: http.MethodHead, check: down, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandlers{Check: tt.check, Logger: discardLogger()}
			rec := httptest.NewRecorder()
			h.Serve(rec, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantBody == "" {
				assert.Zero(t, rec.Body.Len())
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
