package mock

import (
	"context"

	"github.com/crystalscraper/crystal"
)

var _ crystal.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of crystal.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, rootURL string, maxDepth int) (*crystal.CrawlSession, error)
}

func (c *Crawler) Crawl(ctx context.Context, rootURL string, maxDepth int) (*crystal.CrawlSession, error) {
	return c.CrawlFn(ctx, rootURL, maxDepth)
}
