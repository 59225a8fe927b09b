// Package cache provides a TTL-bounded in-memory cache of fetch results,
// used as a decorator around any crystal.Fetcher. Only successful fetches
// are cached; failures always hit the network again.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/crystalscraper/crystal"
)

// DefaultTTL is how long a cached page stays fresh.
const DefaultTTL = 24 * time.Hour

// Ensure Fetcher implements crystal.Fetcher at compile time.
var _ crystal.Fetcher = (*Fetcher)(nil)

type entry struct {
	res     crystal.FetchResult
	fetched time.Time
}

// Fetcher caches the results of an inner Fetcher keyed by URL hash.
// It is safe for concurrent use.
type Fetcher struct {
	next crystal.Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[uint64]entry
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTTL sets the freshness window. Defaults to DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(f *Fetcher) {
		f.ttl = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher creates a caching decorator around next.
func NewFetcher(next crystal.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:    next,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[uint64]entry),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns a cached result when fresh, delegating to the inner fetcher
// otherwise. Expired entries are evicted on access.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crystal.FetchResult, error) {
	key := xxhash.Sum64String(url)

	f.mu.Lock()
	if e, ok := f.entries[key]; ok {
		if f.now().Sub(e.fetched) < f.ttl {
			res := e.res
			f.mu.Unlock()
			return &res, nil
		}
		delete(f.entries, key)
	}
	f.mu.Unlock()

	res, err := f.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[key] = entry{res: *res, fetched: f.now()}
	f.mu.Unlock()

	return res, nil
}

// Name delegates to the inner fetcher.
func (f *Fetcher) Name() string {
	return f.next.Name()
}

// Close delegates to the inner fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
