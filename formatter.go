package crystal

import "context"

// Formatter rewrites extracted text into a cleaner, more readable form.
// The canonical implementation delegates to an external LLM service; callers
// must treat every failure mode as "use the original text unchanged".
type Formatter interface {
	// Reformat returns a cleaned-up version of text. Any error means the
	// caller should fall back to the input text.
	Reformat(ctx context.Context, text string) (string, error)
}

// Passthrough is the no-op Formatter used when LLM formatting is disabled or
// unconfigured. It returns the input unchanged and never fails.
type Passthrough struct{}

var _ Formatter = (*Passthrough)(nil)

// Reformat returns text unchanged.
func (Passthrough) Reformat(_ context.Context, text string) (string, error) {
	return text, nil
}
