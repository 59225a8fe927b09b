package crystal

// ExtractedPage holds the readable content extracted from an HTML page.
type ExtractedPage struct {
	// Title is the page title, falling back to the page URL when the
	// document has no title element.
	Title string

	// Text is the readable text with script, style, and markup removed
	// and whitespace normalized. May be empty for pages with no text.
	Text string

	// Links are outbound links resolved to absolute URLs, restricted to
	// the same apex domain as the page, in document order.
	Links []string
}

// Extractor converts raw HTML into readable text, a title, and the set of
// same-domain outbound links.
type Extractor interface {
	// Extract parses html best-effort: malformed markup never fails, it
	// degrades to whatever text can be recovered. baseURL resolves
	// relative links and serves as the title fallback.
	Extract(html string, baseURL string) (*ExtractedPage, error)
}
