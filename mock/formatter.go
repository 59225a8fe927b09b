package mock

import (
	"context"

	"github.com/crystalscraper/crystal"
)

var _ crystal.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of crystal.Formatter.
type Formatter struct {
	ReformatFn func(ctx context.Context, text string) (string, error)
}

func (f *Formatter) Reformat(ctx context.Context, text string) (string, error) {
	return f.ReformatFn(ctx, text)
}
