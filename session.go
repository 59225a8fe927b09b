package crystal

import (
	"context"
	"time"
)

// MaxCrawlDepth is the deepest link-following the crawler supports.
// Depth 0 means the root page only.
const MaxCrawlDepth = 2

// CrawlSession holds everything produced by one crawl: the page results in
// breadth-first discovery order plus timing metadata. A session lives for
// exactly one scrape request and owns its PageResults.
type CrawlSession struct {
	// RootURL is the normalized URL the crawl started from.
	RootURL string

	// MaxDepth is the link-following bound the crawl ran with.
	MaxDepth int

	// Pages are the per-page results in breadth-first discovery order.
	// Failed pages are included with Success set to false.
	Pages []*PageResult

	// Elapsed is the total wall-clock time of the crawl.
	Elapsed time.Duration

	// Partial reports that the session's time budget expired before the
	// crawl finished; Pages holds whatever completed in time.
	Partial bool
}

// OK reports whether at least one page was scraped successfully.
func (s *CrawlSession) OK() bool {
	for _, p := range s.Pages {
		if p.Success {
			return true
		}
	}
	return false
}

// RootError returns the failure detail of the root page, or "" if the root
// page succeeded or was never fetched.
func (s *CrawlSession) RootError() string {
	if len(s.Pages) == 0 {
		return "no pages fetched"
	}
	if s.Pages[0].Success {
		return ""
	}
	return s.Pages[0].Err
}

// URLs returns the scraped URLs in discovery order.
func (s *CrawlSession) URLs() []string {
	urls := make([]string, 0, len(s.Pages))
	for _, p := range s.Pages {
		urls = append(urls, p.URL)
	}
	return urls
}

// Crawler performs a breadth-first crawl from a root URL.
type Crawler interface {
	// Crawl visits rootURL and, up to maxDepth link-hops away, every
	// unvisited same-domain page. Per-page failures are recorded in the
	// session, not returned; the only error is invalid input.
	Crawl(ctx context.Context, rootURL string, maxDepth int) (*CrawlSession, error)
}
