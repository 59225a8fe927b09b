// Package report assembles crawl sessions into the plain-text report format
// written to disk. The format is stable: reports produced from the same
// session and timestamp are byte-identical, and ParseHeader reads back the
// metadata Build wrote.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crystalscraper/crystal"
)

const banner = "================================================================================"

const timeLayout = "2006-01-02 15:04:05"

// failureBody replaces the content section when no page was scraped.
const failureBody = "No content extracted or scraping failed."

// Build renders the full report for a session, headers and content markers
// included. now stamps the "Scraped on" field so output is reproducible.
func Build(session *crystal.CrawlSession, now time.Time) string {
	var out []string

	out = append(out, banner)
	out = append(out, "SCRAPED WEBSITE CONTENT")
	out = append(out, banner)
	out = append(out, fmt.Sprintf("URL: %s", session.RootURL))
	out = append(out, fmt.Sprintf("Title: %s", Title(session)))
	out = append(out, fmt.Sprintf("Scraped on: %s", now.Format(timeLayout)))
	out = append(out, fmt.Sprintf("Success: %s", boolString(session.OK())))

	if errMsg := session.RootError(); errMsg != "" {
		out = append(out, fmt.Sprintf("Error: %s", errMsg))
	}

	out = append(out, fmt.Sprintf("Scrape time: %.2f seconds", session.Elapsed.Seconds()))

	if ct := contentType(session); ct != "" {
		out = append(out, fmt.Sprintf("Content type: %s", ct))
	}

	if multiPage(session) {
		out = append(out, fmt.Sprintf("Total pages scraped: %d", len(session.Pages)))
		out = append(out, fmt.Sprintf("Max depth used: %d", session.MaxDepth))
		out = append(out, "Scraped URLs:")
		for i, url := range session.URLs() {
			out = append(out, fmt.Sprintf("  %d. %s", i+1, url))
		}
	}

	out = append(out, banner)
	out = append(out, "CONTENT:")
	out = append(out, banner)
	out = append(out, "")

	if body := Body(session); body != "" {
		out = append(out, body)
	} else {
		out = append(out, failureBody)
	}

	out = append(out, "")
	out = append(out, banner)
	out = append(out, "END OF CONTENT")
	out = append(out, banner)

	return strings.Join(out, "\n")
}

// Body returns the content section of the report without headers or end
// markers: the page text for single-page sessions, the per-page assembly for
// multi-page sessions, and empty string when the session failed.
func Body(session *crystal.CrawlSession) string {
	if !session.OK() {
		return ""
	}

	if !multiPage(session) {
		return session.Pages[0].Text
	}

	total := len(session.Pages)
	var out []string
	for i, page := range session.Pages {
		title := page.Title
		if title == "" {
			title = fmt.Sprintf("Page %d", i+1)
		}
		text := page.Text
		if !page.Success {
			text = fmt.Sprintf("[Page failed: %s]", page.Err)
		}

		out = append(out, "\n"+banner)
		out = append(out, fmt.Sprintf("PAGE %d OF %d: %s", i+1, total, title))
		out = append(out, fmt.Sprintf("URL: %s", page.URL))
		out = append(out, banner+"\n")
		out = append(out, text)
		out = append(out, "\n"+banner)
		out = append(out, fmt.Sprintf("END OF PAGE %d", i+1))
		out = append(out, banner+"\n")
	}

	return strings.Join(out, "\n")
}

// Title returns the report title: the root page's title for single-page
// sessions, annotated with the page count for multi-page sessions, and empty
// string when the session failed.
func Title(session *crystal.CrawlSession) string {
	if !session.OK() {
		return ""
	}
	root := session.Pages[0].Title
	if multiPage(session) {
		return fmt.Sprintf("%s (Recursive - %d pages)", root, len(session.Pages))
	}
	return root
}

// Header holds the metadata ParseHeader reads back from a report.
type Header struct {
	URL        string
	Success    bool
	TotalPages int
	MaxDepth   int
}

// ParseHeader extracts the metadata fields from a report produced by Build.
// Reports without multi-page metadata leave TotalPages and MaxDepth zero.
func ParseHeader(report string) (*Header, error) {
	if !strings.HasPrefix(report, banner+"\nSCRAPED WEBSITE CONTENT") {
		return nil, crystal.Errorf(crystal.EINVALID, "not a scrape report")
	}

	h := &Header{}
	for _, line := range strings.Split(report, "\n") {
		switch {
		case strings.HasPrefix(line, "URL: "):
			if h.URL == "" {
				h.URL = strings.TrimPrefix(line, "URL: ")
			}
		case strings.HasPrefix(line, "Success: "):
			h.Success = strings.TrimPrefix(line, "Success: ") == "True"
		case strings.HasPrefix(line, "Total pages scraped: "):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "Total pages scraped: "))
			if err != nil {
				return nil, crystal.Errorf(crystal.EINVALID, "bad page count: %v", err)
			}
			h.TotalPages = n
		case strings.HasPrefix(line, "Max depth used: "):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "Max depth used: "))
			if err != nil {
				return nil, crystal.Errorf(crystal.EINVALID, "bad depth: %v", err)
			}
			h.MaxDepth = n
		case line == "CONTENT:":
			return h, nil
		}
	}
	return h, nil
}

// multiPage reports whether the session renders as a multi-page report.
func multiPage(session *crystal.CrawlSession) bool {
	return session.OK() && session.MaxDepth > 0 && len(session.Pages) > 1
}

// contentType returns the report-level content type.
func contentType(session *crystal.CrawlSession) string {
	if !session.OK() {
		return ""
	}
	if multiPage(session) {
		return "text/recursive"
	}
	return session.Pages[0].ContentType
}

// boolString renders the report format's capitalized booleans.
func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
