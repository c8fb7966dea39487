// Package portalapi is the HTTP client for the external portal API.
//
// Every call goes through one circuit breaker, is timed and counted through the
// StatsD sink, and returns *APIError on failure.
package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/uni-magazine/portal/internal/observability/metrics"
	"github.com/uni-magazine/portal/internal/observability/statsd"
	"github.com/uni-magazine/portal/internal/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
	userAgent      = "magazine-portal/1"
)

var _ ports.PortalAPI = (*Client)(nil)

// BreakerConfig tunes the circuit breaker. Zero values pick defaults.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset.
	Interval time.Duration
	// Timeout spent open before probing again.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Breaker    BreakerConfig
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Client calls the portal API.
type Client struct {
	base    *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics statsd.Sink
	logger  *slog.Logger
}

// errServerStatus marks 5xx responses as breaker failures; it never escapes the client.
var errServerStatus = errors.New("portal API server error")

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("portal API base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse portal API base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("portal API base URL must be http(s), got %q", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "portalapi")

	return &Client{
		base:    base,
		http:    httpClient,
		breaker: newBreaker(opts.Breaker, logger),
		metrics: opts.Metrics,
		logger:  logger,
	}, nil
}

func newBreaker(cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	threshold := cfg.ConsecutiveFailures

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "portal-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// A caller hanging up says nothing about API health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// request describes one API call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

type response struct {
	status int
	body   []byte
}

// do performs req and decodes a 2xx body into out (which may be nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	start := time.Now()
	res, err := c.roundTrip(ctx, req)
	if err == nil && res.status >= 400 {
		err = normalizeError(req.op, res.status, res.body)
	}
	if err == nil && out != nil {
		if decErr := decodeBody(res.body, out); decErr != nil {
			err = &APIError{
				Kind:    KindMessage,
				Status:  res.status,
				Op:      req.op,
				Message: "Unexpected response from the portal API.",
				cause:   decErr,
			}
		}
	}

	metrics.EmitAPIRequest(c.metrics, metrics.APIRequest{
		Operation: req.op,
		Method:    req.method,
		Status:    res.status,
		Duration:  time.Since(start),
		Err:       err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "portal API call failed",
			"op", req.op, "status", res.status, "error", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request) (response, error) {
	var payload []byte
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode request: %w", req.op, err)
		}
		payload = b
	}

	out, err := c.breaker.Execute(func() (any, error) {
		httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("User-Agent", userAgent)
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if req.token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+req.token)
		}

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		res := response{status: resp.StatusCode, body: body}
		if resp.StatusCode >= 500 {
			return res, errServerStatus
		}
		return res, nil
	})

	res, _ := out.(response)
	if err != nil && !errors.Is(err, errServerStatus) {
		// Includes gobreaker.ErrOpenState and ErrTooManyRequests.
		return res, transportError(req.op, err)
	}
	return res, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// decodeBody decodes a bare entity or one wrapped as {"data": ...}.
func decodeBody(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		body = envelope.Data
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
