package fetch_test

import (
	"context"
	"testing"
	"time"

	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/fetch"
	"github.com/crystalscraper/crystal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFetcher(name, html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (*crystal.FetchResult, error) {
			if err != nil {
				return nil, err
			}
			return &crystal.FetchResult{HTML: html, ContentType: "text/html"}, nil
		},
		NameFn: func() string { return name },
	}
}

func TestFallback_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("first strategy wins when it succeeds", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		second := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*crystal.FetchResult, error) {
				secondCalled = true
				return &crystal.FetchResult{HTML: "<html>second</html>"}, nil
			},
		}

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: fixedFetcher("http", "<html>first</html>", nil)},
			{Fetcher: second},
		})

		res, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<html>first</html>", res.HTML)
		assert.False(t, secondCalled)
	})

	t.Run("advances past errors to the next strategy", func(t *testing.T) {
		t.Parallel()

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: fixedFetcher("http", "", crystal.Errorf(crystal.EUNAVAILABLE, "HTTP 403"))},
			{Fetcher: fixedFetcher("rod", "<html>rendered</html>", nil)},
		})

		res, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<html>rendered</html>", res.HTML)
	})

	t.Run("treats an empty body as a strategy failure", func(t *testing.T) {
		t.Parallel()

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: fixedFetcher("http", "   \n", nil)},
			{Fetcher: fixedFetcher("rod", "<html>rendered</html>", nil)},
		})

		res, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<html>rendered</html>", res.HTML)
	})

	t.Run("returns the last failure when all strategies are exhausted", func(t *testing.T) {
		t.Parallel()

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: fixedFetcher("http", "", crystal.Errorf(crystal.EUNAVAILABLE, "HTTP 403"))},
			{Fetcher: fixedFetcher("rod", "", crystal.Errorf(crystal.EUNAVAILABLE, "navigation failed"))},
			{Fetcher: fixedFetcher("chromedp", "", crystal.Errorf(crystal.EUNAVAILABLE, "tab crashed"))},
		})

		_, err := f.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, crystal.EUNAVAILABLE, crystal.ErrorCode(err))
		assert.Contains(t, crystal.ErrorMessage(err), "tab crashed")
		assert.Contains(t, crystal.ErrorMessage(err), "https://example.com")
	})

	t.Run("applies the per-strategy timeout", func(t *testing.T) {
		t.Parallel()

		slow := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (*crystal.FetchResult, error) {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return &crystal.FetchResult{HTML: "<html>slow</html>"}, nil
				}
			},
			NameFn: func() string { return "slow" },
		}

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: slow, Timeout: 10 * time.Millisecond},
			{Fetcher: fixedFetcher("fast", "<html>fast</html>", nil)},
		})

		res, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<html>fast</html>", res.HTML)
	})

	t.Run("stops when the caller's context expires", func(t *testing.T) {
		t.Parallel()

		var calls int
		failing := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (*crystal.FetchResult, error) {
				calls++
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}

		f := fetch.NewFallback([]fetch.Strategy{
			{Fetcher: failing},
			{Fetcher: failing},
			{Fetcher: failing},
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.Fetch(ctx, "https://example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
	})
}

func TestFallback_Close(t *testing.T) {
	t.Parallel()

	var closed []string
	closer := func(name string) *mock.Fetcher {
		return &mock.Fetcher{
			CloseFn: func() error {
				closed = append(closed, name)
				return nil
			},
		}
	}

	f := fetch.NewFallback([]fetch.Strategy{
		{Fetcher: closer("http")},
		{Fetcher: closer("rod")},
		{Fetcher: closer("chromedp")},
	})

	require.NoError(t, f.Close())
	assert.Equal(t, []string{"http", "rod", "chromedp"}, closed)
}
