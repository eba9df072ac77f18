package dispatch

import "fmt"

// Per-call-site caching of slot resolutions.
//
// Receiver populations at a call site are heavily skewed: most sites
// only ever see one table, a few see a handful, and the rest are
// effectively unbounded. The cache states mirror that split, so the
// common case skips the chain walk entirely.

// CacheState is the occupancy state of a call site's cache.
type CacheState uint8

const (
	CacheEmpty       CacheState = iota // no resolution cached yet
	CacheMonomorphic                   // a single table cached
	CachePolymorphic                   // 2..MaxPICEntries tables cached
	CacheMegamorphic                   // too many tables, full lookup every send
)

// MaxPICEntries is the polymorphic cache capacity.
const MaxPICEntries = 6

type cacheEntry struct {
	table *Table
	slot  Slot
}

// CallSite dispatches a fixed selector and caches which table resolved
// to which slot. It progresses Empty -> Monomorphic -> Polymorphic ->
// Megamorphic and never moves backwards except through Reset.
//
// A call site belongs to a single control flow; it is not safe for
// concurrent use.
type CallSite struct {
	selector int
	state    CacheState
	entries  [MaxPICEntries]cacheEntry
	count    int
	hits     uint64
	misses   uint64
}

// NewCallSite creates an empty call site for selector.
func NewCallSite(selector int) *CallSite {
	return &CallSite{selector: selector}
}

// Send dispatches the site's selector on o, consulting the cache
// before falling back to the table's chain walk. Cache misses update
// the site. Same preconditions as Send.
func (c *CallSite) Send(env *Env, o *Header) {
	t := o.table
	s := c.lookup(t)
	if s == nil {
		s = t.Lookup(c.selector)
		if s == nil {
			panic(fmt.Sprintf("dispatch: %q does not understand %q", t.name, t.SelectorName(c.selector)))
		}
		c.update(t, s)
	}
	invoke(env, o, t, c.selector, s)
}

// lookup checks the cache for a slot resolved through t. Returns nil
// on miss.
func (c *CallSite) lookup(t *Table) Slot {
	switch c.state {
	case CacheMonomorphic:
		if c.entries[0].table == t {
			c.hits++
			return c.entries[0].slot
		}

	case CachePolymorphic:
		for i := 0; i < c.count; i++ {
			if c.entries[i].table == t {
				c.hits++
				return c.entries[i].slot
			}
		}

	case CacheMegamorphic, CacheEmpty:
		// Always a miss.
	}

	c.misses++
	return nil
}

// update records a (table, slot) resolution, upgrading the state as
// the table population grows.
func (c *CallSite) update(t *Table, s Slot) {
	if s == nil {
		return
	}

	switch c.state {
	case CacheEmpty:
		c.state = CacheMonomorphic
		c.entries[0] = cacheEntry{table: t, slot: s}
		c.count = 1

	case CacheMonomorphic:
		if c.entries[0].table == t {
			return
		}
		c.state = CachePolymorphic
		c.entries[1] = cacheEntry{table: t, slot: s}
		c.count = 2

	case CachePolymorphic:
		for i := 0; i < c.count; i++ {
			if c.entries[i].table == t {
				return
			}
		}
		if c.count < MaxPICEntries {
			c.entries[c.count] = cacheEntry{table: t, slot: s}
			c.count++
		} else {
			c.state = CacheMegamorphic
			for i := range c.entries {
				c.entries[i] = cacheEntry{}
			}
			c.count = 0
		}

	case CacheMegamorphic:
		// Stay megamorphic.
	}
}

// Selector returns the selector ID the site dispatches.
func (c *CallSite) Selector() int { return c.selector }

// State returns the current cache state.
func (c *CallSite) State() CacheState { return c.state }

// Entries returns the number of valid cache entries.
func (c *CallSite) Entries() int { return c.count }

// Hits returns the number of sends answered from the cache.
func (c *CallSite) Hits() uint64 { return c.hits }

// Misses returns the number of sends that fell back to a chain walk.
func (c *CallSite) Misses() uint64 { return c.misses }

// HitRate returns the hit rate as a percentage of all sends.
func (c *CallSite) HitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) * 100 / float64(total)
}

// Reset clears the cache back to empty, including counters.
func (c *CallSite) Reset() {
	c.state = CacheEmpty
	c.count = 0
	c.hits = 0
	c.misses = 0
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
}
