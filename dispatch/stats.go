package dispatch

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Stats aggregates send counts per slot.
//
// Counters are keyed by "Class>>selector". Recording is a sync.Map
// load plus an atomic increment, so an Env carrying Stats can be
// observed from other goroutines while a run is in flight. A slot
// whose count reaches HotThreshold is marked hot exactly once.

// DefaultHotThreshold is the send count at which a slot is reported
// hot when the caller does not pick a threshold.
const DefaultHotThreshold = 100

// SlotProfile holds the counters for one Class>>selector pair.
type SlotProfile struct {
	Class    string
	Selector string
	count    uint64
	hot      uint32
}

// Count returns the sends recorded so far.
func (p *SlotProfile) Count() uint64 { return atomic.LoadUint64(&p.count) }

// Hot reports whether the slot crossed the threshold.
func (p *SlotProfile) Hot() bool { return atomic.LoadUint32(&p.hot) == 1 }

// Key returns the profile key, "Class>>selector".
func (p *SlotProfile) Key() string { return p.Class + ">>" + p.Selector }

// Stats tracks per-slot send counts with a hot-slot callback.
type Stats struct {
	profiles sync.Map // string -> *SlotProfile

	// HotThreshold is the count at which a slot becomes hot. Zero
	// disables hot tracking.
	HotThreshold uint64

	// OnHot fires once per slot, on the send that reaches the
	// threshold.
	OnHot func(p *SlotProfile)

	hotCount uint64
}

// NewStats creates a Stats with the default hot threshold.
func NewStats() *Stats {
	return &Stats{HotThreshold: DefaultHotThreshold}
}

// Record counts one send of Class>>selector. Returns true when this
// send is the one that made the slot hot.
func (st *Stats) Record(class, selector string) bool {
	key := class + ">>" + selector
	val, _ := st.profiles.LoadOrStore(key, &SlotProfile{Class: class, Selector: selector})
	p := val.(*SlotProfile)

	count := atomic.AddUint64(&p.count, 1)

	// Exactly one increment observes the threshold value, so the
	// callback cannot double-fire.
	if st.HotThreshold > 0 && count == st.HotThreshold {
		atomic.StoreUint32(&p.hot, 1)
		atomic.AddUint64(&st.hotCount, 1)
		if st.OnHot != nil {
			st.OnHot(p)
		}
		return true
	}
	return false
}

// Lookup returns the profile for Class>>selector, or nil if that pair
// was never sent.
func (st *Stats) Lookup(class, selector string) *SlotProfile {
	if val, ok := st.profiles.Load(class + ">>" + selector); ok {
		return val.(*SlotProfile)
	}
	return nil
}

// Snapshot returns a copy of the current counts.
func (st *Stats) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	st.profiles.Range(func(key, value interface{}) bool {
		out[key.(string)] = value.(*SlotProfile).Count()
		return true
	})
	return out
}

// Total returns the sum of all counters.
func (st *Stats) Total() uint64 {
	var total uint64
	st.profiles.Range(func(_, value interface{}) bool {
		total += value.(*SlotProfile).Count()
		return true
	})
	return total
}

// HotSlots returns how many slots have crossed the threshold.
func (st *Stats) HotSlots() uint64 { return atomic.LoadUint64(&st.hotCount) }

// Keys returns the recorded profile keys, sorted for stable listings.
func (st *Stats) Keys() []string {
	var keys []string
	st.profiles.Range(func(key, _ interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Reset discards all profiles and counters.
func (st *Stats) Reset() {
	st.profiles = sync.Map{}
	atomic.StoreUint64(&st.hotCount, 0)
}
