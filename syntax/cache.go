package syntax

import "container/list"

// LineRange identifies a cached viewport slice: lines [Start, End).
type LineRange struct {
	Start int
	End   int
}

// Intersects reports whether the two half-open line ranges share a line.
func (r LineRange) Intersects(o LineRange) bool {
	return r.Start < o.End && o.Start < r.End
}

const defaultCacheCapacity = 32

// Cache memoizes highlight results per viewport line range, each entry
// stamped with the content generation it was computed against. A lookup
// whose stamp trails the requested generation recomputes in place.
// Least recently used entries fall off when the cache is full. Not safe
// for concurrent use; callers serialize through the editor.
type Cache struct {
	capacity int
	ll       *list.List
	items    map[LineRange]*list.Element
}

type cacheEntry struct {
	key   LineRange
	gen   uint64
	spans []Span
}

// NewCache returns a cache holding at most capacity entries. A
// non-positive capacity falls back to a small default.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[LineRange]*list.Element),
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return c.ll.Len()
}

// GetOrCompute returns the spans cached for key at gen. On a miss or a
// stale stamp it calls compute, stores the result stamped with gen, and
// returns it.
func (c *Cache) GetOrCompute(key LineRange, gen uint64, compute func() []Span) []Span {
	if el, ok := c.items[key]; ok {
		ent := el.Value.(*cacheEntry)
		if ent.gen != gen {
			ent.spans = compute()
			ent.gen = gen
		}
		c.ll.MoveToFront(el)
		return ent.spans
	}

	spans := compute()
	el := c.ll.PushFront(&cacheEntry{key: key, gen: gen, spans: spans})
	c.items[key] = el
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
	return spans
}

// InvalidateEdit drops every entry the damaged lines touch and re-stamps
// the survivors to gen so later lookups hit without recomputing. When
// the edit changed the line count, entries ending past the damage start
// are dropped too: their lines shifted.
func (c *Cache) InvalidateEdit(damage LineRange, lineDelta int, gen uint64) {
	for el := c.ll.Front(); el != nil; {
		next := el.Next()
		ent := el.Value.(*cacheEntry)
		drop := ent.key.Intersects(damage)
		if lineDelta != 0 && ent.key.End > damage.Start {
			drop = true
		}
		if drop {
			c.ll.Remove(el)
			delete(c.items, ent.key)
		} else {
			ent.gen = gen
		}
		el = next
	}
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.ll.Init()
	c.items = make(map[LineRange]*list.Element)
}
