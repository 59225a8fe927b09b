package crawl

import (
	"strings"
	"sync"

	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/bloom"
)

// Frontier sizing defaults.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Frontier is an in-memory FIFO crawl queue with Bloom filter deduplication.
// URLs come back out in the order they were pushed, so crawl results keep
// their discovery order. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []crystal.CrawlTarget
}

// NewFrontier creates a Frontier sized for the default expected URL count.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
}

// Push adds a target to the frontier. Returns false if the URL has already
// been seen. URL fragments are stripped before deduplication, so URLs
// differing only by fragment are considered duplicates.
func (f *Frontier) Push(target crystal.CrawlTarget) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(target.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	target.URL = url
	f.queue = append(f.queue, target)
	return true
}

// Pop returns the oldest queued target.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (crystal.CrawlTarget, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return crystal.CrawlTarget{}, false
	}
	target := f.queue[0]
	f.queue = f.queue[1:]
	return target, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
