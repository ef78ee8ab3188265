package market

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/ixstats/engine/ixstats/database/models"
)

const snapshotCacheSize = 1024

// MarketFilters narrows and orders a market data query. The zero value means
// "everything, newest first".
type MarketFilters struct {
	Rarity       string `query:"rarity"`
	MinPrice     int64  `query:"min_price"`
	MaxPrice     int64  `query:"max_price"`
	FeaturedOnly bool   `query:"featured_only"`
	SortBy       string `query:"sort_by"` // price_asc, price_desc, ending_soon, newest
	Page         int    `query:"page"`
	PageSize     int    `query:"page_size"`
}

func (f MarketFilters) key() string {
	return fmt.Sprintf("%s|%d|%d|%t|%s|%d|%d",
		f.Rarity, f.MinPrice, f.MaxPrice, f.FeaturedOnly, f.SortBy, f.Page, f.PageSize)
}

type cachedSnapshot struct {
	listings []*models.AuctionListing
	total    int
	storedAt time.Time
}

// snapshotCache is a TTL-bounded LRU over market query results. It keeps the
// once-per-second countdown polling from hammering the listings table.
type snapshotCache struct {
	cache *lru.Cache
	ttl   time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	cache, _ := lru.New(snapshotCacheSize)
	return &snapshotCache{cache: cache, ttl: ttl}
}

func (c *snapshotCache) get(filters MarketFilters) ([]*models.AuctionListing, int, bool) {
	value, ok := c.cache.Get(filters.key())
	if !ok {
		return nil, 0, false
	}
	snapshot := value.(cachedSnapshot)
	if time.Since(snapshot.storedAt) > c.ttl {
		c.cache.Remove(filters.key())
		return nil, 0, false
	}
	return snapshot.listings, snapshot.total, true
}

func (c *snapshotCache) put(filters MarketFilters, listings []*models.AuctionListing, total int) {
	c.cache.Add(filters.key(), cachedSnapshot{
		listings: listings,
		total:    total,
		storedAt: time.Now(),
	})
}

// invalidate drops every cached snapshot. Called after any mutation so reads
// never serve a stale current bid for longer than one TTL.
func (c *snapshotCache) invalidate() {
	c.cache.Purge()
}
