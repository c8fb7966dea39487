package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// PortalAPIConfig configures the client for the external portal API.
type PortalAPIConfig struct {
	// BaseURL is the API root, e.g. https://api.magazine.example.edu/api/v1.
	BaseURL string        `env:"PORTAL_API_BASE_URL,required"`
	Timeout time.Duration `env:"PORTAL_API_TIMEOUT"           envDefault:"15s"`

	Breaker BreakerConfig `envPrefix:"PORTAL_API_BREAKER_"`
}

// BreakerConfig tunes the circuit breaker in front of the portal API.
type BreakerConfig struct {
	// ConsecutiveFailures of transport or 5xx errors that open the breaker.
	ConsecutiveFailures uint32        `env:"FAILURES"           envDefault:"5"`
	OpenTimeout         time.Duration `env:"OPEN_TIMEOUT"       envDefault:"30s"`
	HalfOpenRequests    uint32        `env:"HALF_OPEN_REQUESTS" envDefault:"1"`
	Interval            time.Duration `env:"INTERVAL"           envDefault:"1m"`
}

// Sanitize trims the base URL and clamps timeouts.
func (c *PortalAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.Timeout > 2*time.Minute {
		c.Timeout = 2 * time.Minute
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		c.Breaker.ConsecutiveFailures = 5
	}
	if c.Breaker.OpenTimeout <= 0 {
		c.Breaker.OpenTimeout = 30 * time.Second
	}
	if c.Breaker.HalfOpenRequests == 0 {
		c.Breaker.HalfOpenRequests = 1
	}
	if c.Breaker.Interval <= 0 {
		c.Breaker.Interval = time.Minute
	}
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (c *PortalAPIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("PORTAL_API_BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("PORTAL_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PORTAL_API_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	return nil
}
