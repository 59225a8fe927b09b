package crawl_test

import (
	"fmt"
	"testing"

	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	t.Run("pops in push order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		f.Push(crystal.CrawlTarget{URL: "https://example.com/a", Depth: 1})
		f.Push(crystal.CrawlTarget{URL: "https://example.com/b", Depth: 1})
		f.Push(crystal.CrawlTarget{URL: "https://example.com/c", Depth: 2})

		var urls []string
		for {
			target, ok := f.Pop()
			if !ok {
				break
			}
			urls = append(urls, target.URL)
		}

		assert.Equal(t, []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		}, urls)
	})

	t.Run("rejects duplicate URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		assert.True(t, f.Push(crystal.CrawlTarget{URL: "https://example.com/page"}))
		assert.False(t, f.Push(crystal.CrawlTarget{URL: "https://example.com/page"}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("treats URLs differing only by fragment as duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		assert.True(t, f.Push(crystal.CrawlTarget{URL: "https://example.com/page#intro"}))
		assert.False(t, f.Push(crystal.CrawlTarget{URL: "https://example.com/page#usage"}))

		target, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/page", target.URL)
	})

	t.Run("pop on empty frontier returns false", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		_, ok := f.Pop()
		assert.False(t, ok)
	})
}

func TestFrontier_Seen(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push(crystal.CrawlTarget{URL: "https://example.com/page"})

	assert.True(t, f.Seen("https://example.com/page"))
	assert.True(t, f.Seen("https://example.com/page#section"))
	assert.False(t, f.Seen("https://example.com/other"))
}

func TestFrontier_Len(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.Equal(t, 0, f.Len())

	for i := range 5 {
		f.Push(crystal.CrawlTarget{URL: fmt.Sprintf("https://example.com/%d", i)})
	}
	assert.Equal(t, 5, f.Len())

	f.Pop()
	assert.Equal(t, 4, f.Len())
}
