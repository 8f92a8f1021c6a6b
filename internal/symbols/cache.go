package symbols

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"nse-symbol-decoder/internal/types"
)

// parseCache memoizes successful parses keyed by the normalized symbol.
// It is a bounded LRU rather than a grow-forever map: a long-running
// importer sees a fresh symbol universe every expiry week. lru.Cache is
// not goroutine safe, so every access holds the mutex.
type parseCache struct {
	mu  sync.Mutex
	lru *lru.Cache
}

func newParseCache(maxEntries int) *parseCache {
	return &parseCache{
		lru: &lru.Cache{MaxEntries: maxEntries},
	}
}

func (c *parseCache) get(key string) (types.ParsedSymbol, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		return types.ParsedSymbol{}, false
	}
	return v.(types.ParsedSymbol), true
}

func (c *parseCache) add(key string, ps types.ParsedSymbol) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, ps)
}

func (c *parseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}
