package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker is a dependency /healthz reports on.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Ping calls f.
func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandlers serves readiness and liveness checks.
type HealthHandlers struct {
	Check  HealthChecker
	Logger *slog.Logger
}

// Serve returns {"status":"ok"}, or 503 with {"status":"degraded"} when the check fails.
func (h *HealthHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, map[string]string{"status": "ok"}
	if h.Check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.Check.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WarnContext(r.Context(), "health check failed", "error", err)
			}
			status, body = http.StatusServiceUnavailable, map[string]string{"status": "degraded"}
		}
	}
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, body)
}
