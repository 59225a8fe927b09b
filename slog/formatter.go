package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/crystalscraper/crystal"
)

// Ensure LoggingFormatter implements crystal.Formatter.
var _ crystal.Formatter = (*LoggingFormatter)(nil)

// LoggingFormatter wraps a Formatter with per-call logging.
type LoggingFormatter struct {
	next   crystal.Formatter
	logger *slog.Logger
}

// NewLoggingFormatter creates a new LoggingFormatter.
func NewLoggingFormatter(next crystal.Formatter, logger *slog.Logger) *LoggingFormatter {
	return &LoggingFormatter{next: next, logger: logger}
}

// Reformat delegates to the wrapped formatter, logging the outcome.
func (f *LoggingFormatter) Reformat(ctx context.Context, text string) (string, error) {
	begin := time.Now()
	formatted, err := f.next.Reformat(ctx, text)
	if err != nil {
		f.logger.Info("reformat",
			"in_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	f.logger.Info("reformat",
		"in_bytes", len(text),
		"out_bytes", len(formatted),
		"duration", time.Since(begin),
	)
	return formatted, nil
}
