package mock

import (
	"context"

	"github.com/crystalscraper/crystal"
)

var _ crystal.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of crystal.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, filename string, content string) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, filename string, content string) (string, error) {
	return w.WriteReportFn(ctx, filename, content)
}
