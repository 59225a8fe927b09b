// Package crystal extracts readable text from websites, optionally following
// in-site links to a bounded depth, and consolidates the results into a single
// textual report written to disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named after
// their primary dependency (e.g., http/, rod/, chromedp/, goquery/, gemini/).
package crystal
