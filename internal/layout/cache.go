package layout

import "hlslc/internal/types"

type cacheKey struct {
	def   *types.StructDef
	rules Rules
}

type cacheEntry struct {
	Layout TypeLayout
	Err    *LayoutError
}

type cache struct {
	byStruct map[cacheKey]cacheEntry
}

func newCache() *cache {
	return &cache{byStruct: make(map[cacheKey]cacheEntry, 32)}
}

func (c *cache) get(k cacheKey) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	e, ok := c.byStruct[k]
	return e, ok
}

func (c *cache) put(k cacheKey, e cacheEntry) {
	if c == nil {
		return
	}
	c.byStruct[k] = e
}
