package crystal

import "time"

// CrawlTarget is a URL scheduled for fetching at a given crawl depth.
// Targets are immutable once enqueued.
type CrawlTarget struct {
	URL   string
	Depth int
}

// PageResult records the outcome of fetching and extracting one page.
// It is created once per fetched URL and never modified afterwards; the
// crawler owns it until the session is handed to the report builder.
type PageResult struct {
	// URL is the normalized absolute URL that was fetched.
	URL string

	// Title is the extracted page title (URL when the page has none).
	Title string

	// Text is the extracted readable text. Empty on failure.
	Text string

	// ContentType reported by the fetch mechanism, when known.
	ContentType string

	// Success reports whether fetch and extraction both succeeded.
	Success bool

	// Err holds the failure detail when Success is false.
	Err string

	// Links are the page's same-domain outbound links in discovery order.
	Links []string

	// FetchTime is how long fetch plus extraction took for this page.
	FetchTime time.Duration
}
