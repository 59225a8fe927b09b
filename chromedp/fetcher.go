// Package chromedp provides a full browser-automation implementation of
// crystal.Fetcher via the Chrome DevTools protocol. It is the last and most
// expensive fetch strategy, kept for sites defensive enough to defeat both
// the plain HTTP client and the headless renderer.
package chromedp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/crystalscraper/crystal"
)

// Ensure Fetcher implements crystal.Fetcher at compile time.
var _ crystal.Fetcher = (*Fetcher)(nil)

// Fetcher drives a shared Chrome instance through the DevTools protocol.
// Each Fetch runs in its own tab context that is canceled before returning,
// even on timeout. The browser launches lazily on the first Fetch.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
	timeout       time.Duration
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

// NewFetcher creates a Fetcher. Close must be called when the Fetcher is no
// longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// browser returns the shared browser context, launching Chrome on first use.
func (f *Fetcher) browser() (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, fmt.Errorf("chromedp fetcher is closed")
	}

	if f.browserCtx == nil {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
		)
		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		f.allocCancel = allocCancel
		f.browserCtx = browserCtx
		f.browserCancel = browserCancel
	}

	return f.browserCtx, nil
}

// Fetch navigates a fresh tab to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crystal.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, err := f.browser()
	if err != nil {
		return nil, err
	}

	// Tab contexts derive from the browser context, not the caller's, so
	// the caller's deadline and cancellation are propagated by hand.
	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()

	deadline, ok := ctx.Deadline()
	if !ok && f.timeout > 0 {
		deadline = time.Now().Add(f.timeout)
		ok = true
	}
	if ok {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithDeadline(tabCtx, deadline)
		defer cancel()
	}

	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var html string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	return &crystal.FetchResult{
		HTML:        html,
		ContentType: "text/html",
	}, nil
}

// Name identifies this strategy in logs and error messages.
func (f *Fetcher) Name() string {
	return "chromedp"
}

// Close shuts down the browser and its allocator. Safe to call multiple
// times, and safe to call when no browser was ever launched.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.browserCancel != nil {
		f.browserCancel()
		f.browserCancel = nil
	}
	if f.allocCancel != nil {
		f.allocCancel()
		f.allocCancel = nil
	}
	f.browserCtx = nil
	return nil
}
