// Package memcache is the in-process query cache store used by single-instance deployments.
package memcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/uni-magazine/portal/internal/ports"
)

var _ ports.QueryCacheStore = (*Store)(nil)

type entry struct {
	value   []byte
	expires time.Time
}

// Store keeps values in a size-bounded LRU with lazy expiry. Generations live in a
// separate map and are never evicted.
type Store struct {
	entries *lru.Cache

	mu          sync.Mutex
	generations map[string]int64
	now         func() time.Time
}

// Options configures a Store.
type Options struct {
	// MaxEntries caps stored values; the least recently used value is evicted first.
	// Zero means 10000.
	MaxEntries int
	Now        func() time.Time
}

// New creates an empty Store.
func New(opts Options) (*Store, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 10000
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	entries, err := lru.New(opts.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Store{
		entries:     entries,
		generations: make(map[string]int64),
		now:         opts.Now,
	}, nil
}

// Get returns a copy of the live value under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}
	raw, ok := s.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	e, _ := raw.(entry)
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		s.entries.Remove(key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries.Add(key, e)
	return nil
}

// Generation returns the current generation for entity.
func (s *Store) Generation(_ context.Context, entity string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[entity], nil
}

// Bump increments the generation for entity.
func (s *Store) Bump(_ context.Context, entity string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[entity]++
	return s.generations[entity], nil
}

// Len reports the number of stored values, expired or not.
func (s *Store) Len() int {
	return s.entries.Len()
}
