// Package goquery implements HTML content extraction using the goquery
// library. It converts a fetched page into a title, readable text, and the
// set of same-domain links it references.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/crystalscraper/crystal"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// noiseSelector matches elements whose text is never page content.
const noiseSelector = "script, style, noscript, template, iframe, head"

// Ensure Extractor implements crystal.Extractor at compile time.
var _ crystal.Extractor = (*Extractor)(nil)

// Extractor extracts the title, readable text, and same-domain links from an
// HTML document. Malformed markup never fails; html parsing is tolerant and
// whatever structure survives is extracted.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns the page content. baseURL is used to
// resolve relative links and as the title fallback when the document has no
// <title> element.
func (e *Extractor) Extract(htmlStr, baseURL string) (*crystal.ExtractedPage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crystal.Errorf(crystal.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, crystal.Errorf(crystal.EINVALID, "failed to parse HTML: %v", err)
	}

	// Capture the title before removing the head subtree.
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = baseURL
	}

	links := extractLinks(doc, base)

	doc.Find(noiseSelector).Remove()

	return &crystal.ExtractedPage{
		Title: title,
		Text:  extractText(doc),
		Links: links,
	}, nil
}

// extractText walks the document's text nodes and joins non-empty lines.
// Runs of whitespace inside a text node collapse to a single space.
func extractText(doc *goquery.Document) string {
	var lines []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := collapseSpace(n.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Selection.Nodes {
		walk(n)
	}

	return strings.Join(lines, "\n")
}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractLinks returns resolved same-domain links in document order,
// deduplicated by their fragment-stripped form.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !isSameDomain(base, resolved) {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links
}

// resolveURL resolves a relative URL against a base URL, stripping the
// fragment. Returns empty string for unparseable hrefs, non-HTTP schemes,
// and self-referential links (anchor-only links back to the same page).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameDomain reports whether resolved shares the base URL's registrable
// domain, so subdomains like docs.example.com count as example.com.
func isSameDomain(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return apexDomain(u.Host) == apexDomain(base.Host)
}

// apexDomain returns the registrable domain for a host. Hosts without a
// public suffix (localhost, IP addresses) fall back to the host itself with
// any leading "www." removed.
func apexDomain(host string) string {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if apex, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return apex
	}
	return strings.TrimPrefix(host, "www.")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
