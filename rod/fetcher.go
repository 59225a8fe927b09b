// Package rod provides a headless-Chrome implementation of crystal.Fetcher.
// It is the second fetch strategy: slower than plain HTTP but able to return
// JavaScript-rendered content.
package rod

import (
	"context"
	"time"

	"github.com/crystalscraper/crystal"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements crystal.Fetcher at compile time.
var _ crystal.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome. Each Fetch opens a
// fresh page (tab) and closes it before returning, even on timeout; the
// browser itself is shared and recycled by the BrowserManager.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets a per-fetch timeout applied when the caller's context
// carries no deadline of its own.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithManagerMaxPages sets the browser recycling threshold.
func WithManagerMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.manager = NewBrowserManager(WithMaxPages(n))
	}
}

// NewFetcher creates a Fetcher. The browser launches lazily on the first
// Fetch; Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		manager: NewBrowserManager(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crystal.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok && f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	browser, err := f.manager.Browser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	f.manager.IncrementPageCount()

	return &crystal.FetchResult{
		HTML:        html,
		ContentType: "text/html",
	}, nil
}

// Name identifies this strategy in logs and error messages.
func (f *Fetcher) Name() string {
	return "rod"
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
