package crystal

import "strings"

// Request describes one scrape operation as received from the API or CLI
// layer.
type Request struct {
	// URL to scrape. A missing scheme is treated as https.
	URL string

	// Depth is the link-following depth, 0 through MaxCrawlDepth.
	Depth int

	// LLMEnabled asks for the extracted text to be run through the
	// external reformatting service when one is configured.
	LLMEnabled bool

	// Filename overrides the derived report filename. The caller is
	// responsible for providing a safe name; only the extension is
	// normalized.
	Filename string
}

// Validate returns an EINVALID error if the request cannot be served.
// Out-of-range depth is rejected, not clamped.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "url required")
	}
	if r.Depth < 0 || r.Depth > MaxCrawlDepth {
		return Errorf(EINVALID, "depth must be between 0 and %d", MaxCrawlDepth)
	}
	return nil
}

// NormalizeURL prefixes a schemeless URL with https://.
func NormalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// Metadata describes a multi-page scrape for the API layer.
type Metadata struct {
	TotalPages  int      `json:"total_pages"`
	MaxDepth    int      `json:"max_depth"`
	ScrapedURLs []string `json:"scraped_urls"`
}

// Result is the outcome of a scrape operation, shaped for the API and CLI
// layers.
type Result struct {
	// ID identifies the result for later retrieval or download.
	ID string `json:"result_id"`

	// Success reports whether at least one page was scraped.
	Success bool `json:"success"`

	// URL is the normalized root URL that was scraped.
	URL string `json:"url"`

	// Title of the root page; multi-page scrapes get a combined title.
	Title string `json:"title"`

	// Content is a preview of the scraped text.
	Content string `json:"content_preview"`

	// Error holds the failure detail when Success is false.
	Error string `json:"error,omitempty"`

	// TotalLength is the character count of the full scraped text.
	TotalLength int `json:"total_length"`

	// ScrapeTime is the elapsed crawl time in seconds.
	ScrapeTime float64 `json:"scrape_time"`

	// Filename and Path locate the written report file.
	Filename string `json:"filename"`
	Path     string `json:"path"`

	// Metadata is set for multi-page scrapes only.
	Metadata *Metadata `json:"metadata,omitempty"`
}
