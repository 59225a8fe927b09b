// Package crawl provides breadth-first website crawling. It coordinates the
// frontier, fetching, extraction, and per-domain rate limiting to turn a root
// URL into an ordered set of page results.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/crystalscraper/crystal"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	// DefaultMaxPages caps the total page count to prevent runaway crawls.
	DefaultMaxPages = 30
	// DefaultConcurrency is the number of pages fetched in parallel within a level.
	DefaultConcurrency = 5
)

// Limiter paces requests per domain.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Ensure Crawler implements crystal.Crawler at compile time.
var _ crystal.Crawler = (*Crawler)(nil)

// Crawler performs breadth-first crawls. Levels run strictly in sequence:
// all pages at depth d are fetched before any page at depth d+1, so a page's
// depth is always the shortest link distance from the root. Within a level,
// pages are fetched concurrently but results keep discovery order.
type Crawler struct {
	Fetcher     crystal.Fetcher
	Extractor   crystal.Extractor
	Limiter     Limiter
	Concurrency int
	MaxPages    int
	Logger      *slog.Logger
}

// Crawl fetches rootURL and follows same-domain links breadth-first down to
// maxDepth. Individual page failures are recorded on the session, not
// returned as errors; only an invalid depth fails the call. When ctx expires
// mid-crawl the session is returned with Partial set and the pages gathered
// so far.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, maxDepth int) (*crystal.CrawlSession, error) {
	if maxDepth < 0 || maxDepth > crystal.MaxCrawlDepth {
		return nil, crystal.Errorf(crystal.EINVALID, "depth must be between 0 and %d, got %d", crystal.MaxCrawlDepth, maxDepth)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	start := time.Now()
	session := &crystal.CrawlSession{
		RootURL:  rootURL,
		MaxDepth: maxDepth,
	}

	frontier := NewFrontier()
	frontier.Push(crystal.CrawlTarget{URL: rootURL, Depth: 0})

	level := []crystal.CrawlTarget{{URL: stripFragment(rootURL), Depth: 0}}

	for len(level) > 0 {
		if remaining := maxPages - len(session.Pages); len(level) > remaining {
			level = level[:remaining]
		}
		if len(level) == 0 {
			break
		}

		results := c.crawlLevel(ctx, level)

		var next []crystal.CrawlTarget
		for i, page := range results {
			if page == nil {
				// Fetch abandoned because the session context expired.
				session.Partial = true
				continue
			}
			session.Pages = append(session.Pages, page)

			if !page.Success || level[i].Depth >= maxDepth {
				continue
			}
			for _, link := range page.Links {
				if frontier.Push(crystal.CrawlTarget{URL: link, Depth: level[i].Depth + 1}) {
					next = append(next, crystal.CrawlTarget{URL: stripFragment(link), Depth: level[i].Depth + 1})
				}
			}
		}

		if ctx.Err() != nil {
			session.Partial = true
			break
		}
		if len(session.Pages) >= maxPages {
			break
		}
		level = next
	}

	session.Elapsed = time.Since(start)
	return session, nil
}

// crawlLevel fetches every target in the level concurrently. The returned
// slice is positional: results[i] corresponds to level[i], and is nil when
// the fetch was abandoned due to context expiry.
func (c *Crawler) crawlLevel(ctx context.Context, level []crystal.CrawlTarget) []*crystal.PageResult {
	results := make([]*crystal.PageResult, len(level))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrencyOrDefault())

	for i, target := range level {
		g.Go(func() error {
			results[i] = c.crawlPage(gctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Crawler) concurrencyOrDefault() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return DefaultConcurrency
}

// crawlPage fetches and extracts a single page. Failures are recorded on the
// result rather than returned; a nil result means the session context expired
// before the page could be fetched.
func (c *Crawler) crawlPage(ctx context.Context, target crystal.CrawlTarget) *crystal.PageResult {
	if ctx.Err() != nil {
		return nil
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(target.URL)); err != nil {
			return nil
		}
	}

	start := time.Now()
	res, err := c.Fetcher.Fetch(ctx, target.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		if c.Logger != nil {
			c.Logger.Warn("page fetch failed", "url", target.URL, "depth", target.Depth, "err", err)
		}
		return &crystal.PageResult{
			URL:       target.URL,
			Err:       crystal.ErrorMessage(err),
			FetchTime: time.Since(start),
		}
	}

	page, err := c.Extractor.Extract(res.HTML, target.URL)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("page extraction failed", "url", target.URL, "err", err)
		}
		return &crystal.PageResult{
			URL:         target.URL,
			ContentType: res.ContentType,
			Err:         crystal.ErrorMessage(err),
			FetchTime:   time.Since(start),
		}
	}

	if c.Logger != nil {
		c.Logger.Debug("page crawled",
			"url", target.URL,
			"depth", target.Depth,
			"bytes", len(page.Text),
			"links", len(page.Links),
		)
	}

	return &crystal.PageResult{
		URL:         target.URL,
		Title:       page.Title,
		Text:        page.Text,
		ContentType: res.ContentType,
		Success:     true,
		Links:       page.Links,
		FetchTime:   time.Since(start),
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
