package mock

import (
	"context"

	"github.com/crystalscraper/crystal"
)

var _ crystal.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crystal.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*crystal.FetchResult, error)
	NameFn  func() string
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*crystal.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Name() string {
	if f.NameFn == nil {
		return "mock"
	}
	return f.NameFn()
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
