package mock

import "github.com/crystalscraper/crystal"

var _ crystal.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crystal.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) (*crystal.ExtractedPage, error)
}

func (e *Extractor) Extract(html string, baseURL string) (*crystal.ExtractedPage, error) {
	return e.ExtractFn(html, baseURL)
}
