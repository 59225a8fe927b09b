// Package fetch provides the layered fetch strategy: an ordered list of
// crystal.Fetcher implementations tried in sequence until one returns usable
// HTML. Fallback across strategies is the retry policy; no strategy is ever
// retried on its own.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/crystalscraper/crystal"
)

// Strategy pairs a fetch mechanism with its own timeout. Heavier strategies
// get longer budgets.
type Strategy struct {
	Fetcher crystal.Fetcher
	Timeout time.Duration
}

// Ensure Fallback implements crystal.Fetcher at compile time.
var _ crystal.Fetcher = (*Fallback)(nil)

// Fallback tries strategies in fixed priority order. A strategy failure
// (non-2xx status, timeout, connection error, or empty body) advances to the
// next strategy; only when all are exhausted does Fetch return an error,
// carrying the last strategy's failure reason.
type Fallback struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures a Fallback.
type Option func(*Fallback)

// WithLogger enables debug logging of per-strategy attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fallback) {
		f.logger = logger
	}
}

// NewFallback creates a Fallback over the given strategies, tried in order.
func NewFallback(strategies []Strategy, opts ...Option) *Fallback {
	f := &Fallback{strategies: strategies}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch tries each strategy in order and returns the first usable result.
func (f *Fallback) Fetch(ctx context.Context, url string) (*crystal.FetchResult, error) {
	var lastErr error

	for _, s := range f.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := f.tryStrategy(ctx, s, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if f.logger != nil {
			f.logger.Debug("fetch strategy failed",
				"strategy", s.Fetcher.Name(),
				"url", url,
				"err", err,
			)
		}

		// The session budget expiring is not a strategy failure; stop
		// instead of burning the remaining strategies on a dead context.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, crystal.Errorf(crystal.EUNAVAILABLE,
		"all fetch strategies failed for %s: %s", url, crystal.ErrorMessage(lastErr))
}

// tryStrategy runs one strategy under its own timeout and rejects empty
// bodies so the next strategy gets a chance.
func (f *Fallback) tryStrategy(ctx context.Context, s Strategy, url string) (*crystal.FetchResult, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.HTML) == "" {
		return nil, crystal.Errorf(crystal.EUNAVAILABLE, "%s returned empty body for %s", s.Fetcher.Name(), url)
	}

	if f.logger != nil {
		f.logger.Debug("fetch strategy succeeded",
			"strategy", s.Fetcher.Name(),
			"url", url,
			"bytes", len(res.HTML),
			"duration", time.Since(start),
		)
	}

	return res, nil
}

// Name identifies the fallback chain in logs and error messages.
func (f *Fallback) Name() string {
	return "fallback"
}

// Close closes every strategy, returning the combined errors.
func (f *Fallback) Close() error {
	var errs []error
	for _, s := range f.strategies {
		if err := s.Fetcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
