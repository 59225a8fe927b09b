package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/cache"
	"github.com/crystalscraper/crystal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("serves repeated fetches from cache", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*crystal.FetchResult, error) {
				calls++
				return &crystal.FetchResult{HTML: "<html>cached</html>"}, nil
			},
		}

		f := cache.NewFetcher(inner)

		for range 3 {
			res, err := f.Fetch(context.Background(), "https://example.com")
			require.NoError(t, err)
			assert.Equal(t, "<html>cached</html>", res.HTML)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("refetches after TTL expiry", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*crystal.FetchResult, error) {
				calls++
				return &crystal.FetchResult{HTML: "<html>v</html>"}, nil
			},
		}

		now := time.Now()
		f := cache.NewFetcher(inner,
			cache.WithTTL(time.Minute),
			cache.WithClock(func() time.Time { return now }),
		)

		_, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)

		_, err = f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("never caches failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*crystal.FetchResult, error) {
				calls++
				return nil, crystal.Errorf(crystal.EUNAVAILABLE, "HTTP 503")
			},
		}

		f := cache.NewFetcher(inner)

		for range 2 {
			_, err := f.Fetch(context.Background(), "https://example.com")
			require.Error(t, err)
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("caches per URL", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*crystal.FetchResult, error) {
				calls++
				return &crystal.FetchResult{HTML: url}, nil
			},
		}

		f := cache.NewFetcher(inner)

		res1, err := f.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		res2, err := f.Fetch(context.Background(), "https://example.com/b")
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/a", res1.HTML)
		assert.Equal(t, "https://example.com/b", res2.HTML)
		assert.Equal(t, 2, calls)
	})
}

func TestFetcher_Delegation(t *testing.T) {
	t.Parallel()

	var closed bool
	inner := &mock.Fetcher{
		NameFn:  func() string { return "inner" },
		CloseFn: func() error { closed = true; return nil },
	}

	f := cache.NewFetcher(inner)

	assert.Equal(t, "inner", f.Name())
	require.NoError(t, f.Close())
	assert.True(t, closed)
}
