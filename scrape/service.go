// Package scrape orchestrates a full scrape operation: crawl, optional LLM
// reformatting, report assembly, and persistence.
package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/report"
	"github.com/google/uuid"
)

// DefaultPreviewLen is how much of the scraped text ends up in the result's
// content preview.
const DefaultPreviewLen = 500

// Service runs scrape requests end to end. The report is written even when
// the crawl fails, so a failed scrape still leaves a diagnosable file behind.
type Service struct {
	Crawler   crystal.Crawler
	Formatter crystal.Formatter
	Writer    crystal.ReportWriter

	// Timeout bounds the whole operation. Zero means no limit.
	Timeout time.Duration

	// PreviewLen bounds Result.Content. Zero means DefaultPreviewLen.
	PreviewLen int

	Logger *slog.Logger

	// Now is the time source for report timestamps and filenames.
	// Defaults to time.Now.
	Now func() time.Time
}

// Scrape validates and runs one request, returning the API-shaped result.
// LLM reformatting failures never fail the request; the raw text is used
// instead.
func (s *Service) Scrape(ctx context.Context, req crystal.Request) (*crystal.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	url := crystal.NormalizeURL(req.URL)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	session, err := s.Crawler.Crawl(ctx, url, req.Depth)
	if err != nil {
		return nil, err
	}

	if req.LLMEnabled && s.Formatter != nil {
		session = s.reformatted(ctx, session)
	}

	now := s.now()
	content := report.Build(session, now)

	filename := req.Filename
	if filename == "" {
		filename = report.Filename(url, now)
	} else {
		filename = report.EnsureExt(filename)
	}

	// The report is written regardless of crawl success.
	path, err := s.Writer.WriteReport(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	body := report.Body(session)
	result := &crystal.Result{
		ID:          uuid.NewString(),
		Success:     session.OK(),
		URL:         url,
		Title:       report.Title(session),
		Content:     preview(body, s.previewLen()),
		Error:       session.RootError(),
		TotalLength: len(body),
		ScrapeTime:  session.Elapsed.Seconds(),
		Filename:    filename,
		Path:        path,
	}

	if req.Depth > 0 && session.OK() {
		result.Metadata = &crystal.Metadata{
			TotalPages:  len(session.Pages),
			MaxDepth:    session.MaxDepth,
			ScrapedURLs: session.URLs(),
		}
	}

	if s.Logger != nil {
		s.Logger.Info("scrape finished",
			"url", url,
			"success", result.Success,
			"pages", len(session.Pages),
			"partial", session.Partial,
			"path", path,
		)
	}

	return result, nil
}

// reformatted returns a copy of the session with each successful page's text
// run through the formatter. Any formatter error leaves that page's raw text
// in place.
func (s *Service) reformatted(ctx context.Context, session *crystal.CrawlSession) *crystal.CrawlSession {
	out := *session
	out.Pages = make([]*crystal.PageResult, len(session.Pages))

	for i, page := range session.Pages {
		p := *page
		if p.Success && p.Text != "" {
			formatted, err := s.Formatter.Reformat(ctx, p.Text)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Warn("reformat failed, keeping raw text", "url", p.URL, "err", err)
				}
			} else {
				p.Text = formatted
			}
		}
		out.Pages[i] = &p
	}

	return &out
}

func (s *Service) previewLen() int {
	if s.PreviewLen > 0 {
		return s.PreviewLen
	}
	return DefaultPreviewLen
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// preview truncates text for the result payload.
func preview(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}
