package config

import (
	"errors"
	"time"
)

// SessionStoreKind selects where sessions live.
type SessionStoreKind string

const (
	// SessionStoreCookie seals the whole session into the cookie.
	SessionStoreCookie SessionStoreKind = "cookie"
	// SessionStoreRedis keeps sessions in Redis and puts only the id in the cookie.
	SessionStoreRedis SessionStoreKind = "redis"
)

// minSessionSecretLength matches the cookie store's minimum.
const minSessionSecretLength = 16

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v, err := parseChoice("SessionStoreKind", string(text), string(SessionStoreCookie), string(SessionStoreRedis))
	if err != nil {
		return err
	}
	*k = SessionStoreKind(v)
	return nil
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"cookie"`

	// Secret keys the cookie encryption. Required even with the redis store so the
	// deployment can switch stores without a new secret.
	Secret string        `env:"SESSION_SECRET,required"`
	TTL    time.Duration `env:"SESSION_TTL"             envDefault:"240h"`
}

// Sanitize clamps the TTL.
func (c *SessionConfig) Sanitize() {
	if c.Store == "" {
		c.Store = SessionStoreCookie
	}
	if c.TTL <= 0 {
		c.TTL = 240 * time.Hour
	}
}

// Validate checks the secret.
func (c *SessionConfig) Validate() error {
	if len(c.Secret) < minSessionSecretLength {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}
	return nil
}
