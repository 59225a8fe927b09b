// Package gemini implements LLM-based text reformatting using Google Gemini.
// The formatter is strictly cosmetic: it cleans up extracted page text
// without adding, summarizing, or rewriting content. Callers are expected to
// fall back to the unformatted text on any error.
package gemini

import (
	"context"
	"strings"

	"github.com/crystalscraper/crystal"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// DefaultMaxInputLen caps the text sent to the model. Longer inputs are
// truncated rather than rejected.
const DefaultMaxInputLen = 100000

// minResponseLen guards against degenerate model output. Responses shorter
// than this are treated as a formatting failure.
const minResponseLen = 50

// Ensure Formatter implements crystal.Formatter at compile time.
var _ crystal.Formatter = (*Formatter)(nil)

// Formatter implements crystal.Formatter using Google Gemini.
type Formatter struct {
	client      *genai.Client
	maxInputLen int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithMaxInputLen overrides the input truncation limit.
func WithMaxInputLen(n int) Option {
	return func(f *Formatter) {
		f.maxInputLen = n
	}
}

// NewFormatter creates a new Formatter.
func NewFormatter(client *genai.Client, opts ...Option) *Formatter {
	f := &Formatter{client: client, maxInputLen: DefaultMaxInputLen}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Reformat cleans up extracted page text. Empty input passes through
// unchanged without an API call.
func (f *Formatter) Reformat(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	if len(text) > f.maxInputLen {
		text = text[:f.maxInputLen]
	}

	result, err := f.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", crystal.Errorf(crystal.EINTERNAL, "gemini returned nil result")
	}

	formatted := strings.TrimSpace(result.Text())
	if len(formatted) < minResponseLen {
		return "", crystal.Errorf(crystal.EINTERNAL, "gemini returned %d chars, below the %d minimum", len(formatted), minResponseLen)
	}

	return formatted, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a text formatter. Clean up the scraped website text you are given: fix broken line wrapping, remove navigation fragments and repeated boilerplate, and group related lines into paragraphs. Preserve all substantive content verbatim. Never summarize, never add commentary, and never invent text. Return only the cleaned text.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt containing the text to clean up.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<scraped_text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</scraped_text>\n\n")
	sb.WriteString("Clean up the text above.")
	return sb.String()
}
