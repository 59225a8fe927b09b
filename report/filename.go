package report

import (
	"strings"
	"time"
)

// maxFilenameStem caps the URL-derived portion of generated filenames.
const maxFilenameStem = 100

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"?", "_",
	"&", "_",
	"<", "_",
	">", "_",
	"|", "_",
	`"`, "_",
	"*", "_",
)

// Filename derives a safe report filename from a URL: the scheme is dropped,
// filesystem-hostile characters become underscores, the stem is capped at 100
// characters, and a timestamp keeps repeated scrapes from colliding.
func Filename(url string, now time.Time) string {
	stem := strings.TrimPrefix(url, "https://")
	stem = strings.TrimPrefix(stem, "http://")
	stem = filenameReplacer.Replace(stem)

	if len(stem) > maxFilenameStem {
		stem = stem[:maxFilenameStem]
	}

	return stem + "_" + now.Format("20060102_150405") + ".txt"
}

// EnsureExt appends the .txt extension to a caller-supplied filename when
// it is missing.
func EnsureExt(filename string) string {
	if strings.HasSuffix(filename, ".txt") {
		return filename
	}
	return filename + ".txt"
}
