package crystal

import "context"

// ReportWriter persists a finished report.
type ReportWriter interface {
	// WriteReport stores content under filename and returns the full path
	// of the written file. The path is stable: other tooling (download
	// endpoints) relies on it.
	WriteReport(ctx context.Context, filename string, content string) (string, error)
}
