package ingestion

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonathan/assessment-recommender/internal/types"
)

// Page cache defaults.
const (
	DefaultPageCacheSize = 128
	DefaultPageCacheTTL  = 10 * time.Minute
)

// PageCache keeps recently scraped pages in memory so repeated requests for
// the same URL do not refetch it. Failed fetches are not cached. A nil
// *PageCache fetches every time.
type PageCache struct {
	pages *expirable.LRU[string, *types.Page]
}

// NewPageCache creates a cache holding at most size pages for ttl each.
// Non-positive arguments use the defaults.
func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size <= 0 {
		size = DefaultPageCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultPageCacheTTL
	}
	return &PageCache{pages: expirable.NewLRU[string, *types.Page](size, nil, ttl)}
}

// Fetch returns the cached page for urlStr, calling FetchPage on a miss.
func (c *PageCache) Fetch(ctx context.Context, urlStr string, opts PageOptions) (*types.Page, error) {
	if c == nil {
		return FetchPage(ctx, urlStr, opts)
	}

	if page, ok := c.pages.Get(urlStr); ok {
		if opts.Verbose {
			log.Printf("[VERBOSE] Page cache hit: %s", urlStr)
		}
		return clonePage(page), nil
	}

	page, err := FetchPage(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	c.pages.Add(urlStr, clonePage(page))
	return page, nil
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.pages.Len()
}

func clonePage(p *types.Page) *types.Page {
	cp := *p
	cp.Links = slices.Clone(p.Links)
	return &cp
}
