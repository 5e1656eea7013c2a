package api

import (
	"container/list"
	"os"
	"strconv"
	"sync"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

const defaultCatalogCacheSize = 64

// CatalogCache keeps recently read catalogs in memory, evicting the least
// recently used once full. Safe for concurrent use.
type CatalogCache struct {
	mu      sync.Mutex
	maxSize int
	recency *list.List // front = most recent
	byID    map[string]*list.Element
}

type cachedCatalog struct {
	id      string
	catalog *wardrobe.Catalog
}

// NewCatalogCache returns a cache holding up to maxSize catalogs
// (defaultCatalogCacheSize when maxSize <= 0).
func NewCatalogCache(maxSize int) *CatalogCache {
	if maxSize <= 0 {
		maxSize = defaultCatalogCacheSize
	}
	return &CatalogCache{
		maxSize: maxSize,
		recency: list.New(),
		byID:    make(map[string]*list.Element, maxSize),
	}
}

// NewCatalogCacheFromEnv sizes the cache from CATALOG_CACHE_SIZE.
func NewCatalogCacheFromEnv() *CatalogCache {
	n, err := strconv.Atoi(os.Getenv("CATALOG_CACHE_SIZE"))
	if err != nil {
		n = 0
	}
	return NewCatalogCache(n)
}

// Get returns the cached catalog or nil, and records the lookup.
func (c *CatalogCache) Get(id string) *wardrobe.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byID[id]
	if !ok {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	cacheLookups.WithLabelValues("hit").Inc()
	c.recency.MoveToFront(el)
	return el.Value.(*cachedCatalog).catalog
}

// Put stores cat under id, replacing any previous entry.
func (c *CatalogCache) Put(id string, cat *wardrobe.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byID[id]; ok {
		el.Value.(*cachedCatalog).catalog = cat
		c.recency.MoveToFront(el)
		return
	}
	c.byID[id] = c.recency.PushFront(&cachedCatalog{id: id, catalog: cat})

	for c.recency.Len() > c.maxSize {
		c.remove(c.recency.Back())
	}
}

// Invalidate drops id if present.
func (c *CatalogCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byID[id]; ok {
		c.remove(el)
	}
}

// Len returns the number of cached catalogs.
func (c *CatalogCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

func (c *CatalogCache) remove(el *list.Element) {
	delete(c.byID, el.Value.(*cachedCatalog).id)
	c.recency.Remove(el)
}
