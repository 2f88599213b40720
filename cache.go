package depot

import "github.com/TheBitDrifter/mask"

// matchCache keeps compiled match lists keyed by query signature. Lists are
// shared with iterators and never mutated after insertion.
type matchCache struct {
	items       map[signature][]EntityID
	maxCapacity int
	hits        int
	misses      int
}

func newMatchCache(capacity int) *matchCache {
	return &matchCache{
		items:       make(map[signature][]EntityID),
		maxCapacity: capacity,
	}
}

func (c *matchCache) get(sig signature) ([]EntityID, bool) {
	ids, ok := c.items[sig]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return ids, ok
}

// put reports false when the cache is full.
func (c *matchCache) put(sig signature, ids []EntityID) bool {
	if _, ok := c.items[sig]; !ok && len(c.items) >= c.maxCapacity {
		return false
	}
	c.items[sig] = ids
	return true
}

// invalidate drops every entry reading a store marked in changed.
func (c *matchCache) invalidate(changed mask.Mask) int {
	dropped := 0
	for sig := range c.items {
		if sig.touches(changed) {
			delete(c.items, sig)
			dropped++
		}
	}
	return dropped
}

func (c *matchCache) Len() int {
	return len(c.items)
}

func (c *matchCache) Clear() {
	clear(c.items)
}
