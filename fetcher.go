package crystal

import "context"

// FetchResult holds the raw outcome of fetching a single URL.
type FetchResult struct {
	// HTML is the raw (possibly rendered) page markup.
	HTML string

	// ContentType is the content type reported by the fetch mechanism,
	// e.g. "text/html; charset=utf-8". May be empty.
	ContentType string
}

// Fetcher retrieves raw HTML from URLs.
// Implementations range from a plain HTTP client to full browser automation;
// fetch.Fallback chains several of them in priority order.
type Fetcher interface {
	// Fetch retrieves the page at url. The context controls timeout and
	// cancellation. A non-2xx response is an error, not a result.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Name identifies the fetch mechanism for logging and error messages.
	Name() string

	// Close releases any resources held by the fetcher (browser processes,
	// network sessions). Must be called when the Fetcher is no longer needed.
	Close() error
}
