package dispatch

import (
	"fmt"
	"sync"
)

// Registry owns the dispatch tables for a family of classes.
//
// The slot shape is declared up front: NewRegistry interns the slot
// names, and every table defined afterwards must cover all of them,
// either with local bindings or through its parent chain. Define
// builds fully bound tables that never change; Seal then freezes the
// registry itself, leaving only lookups.
//
// Exactly one table exists per class name. Headers share these
// singletons by reference; the registry never hands out copies.
type Registry struct {
	mu        sync.RWMutex
	selectors *SelectorTable
	shape     []int
	tables    map[string]*Table
	order     []string
	sealed    bool
}

// NewRegistry creates a registry whose tables must cover the given
// slot names. Names are interned in order, so the first gets
// selector ID 0.
func NewRegistry(slotNames ...string) *Registry {
	r := &Registry{
		selectors: NewSelectorTable(),
		tables:    make(map[string]*Table),
	}
	r.shape = r.selectors.InternAll(slotNames...)
	return r
}

// Selectors returns the registry's selector table.
func (r *Registry) Selectors() *SelectorTable { return r.selectors }

// Shape returns the selector IDs every table must cover, as a copy.
func (r *Registry) Shape() []int {
	ids := make([]int, len(r.shape))
	copy(ids, r.shape)
	return ids
}

// Define creates the singleton table for a class. bindings maps slot
// names to implementations; a parent table, if given, must belong to
// this registry and contributes its bindings to coverage. The
// returned table is immutable.
func (r *Registry) Define(name string, parent *Table, bindings map[string]Slot) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, fmt.Errorf("registry is sealed, cannot define %q", name)
	}
	if _, ok := r.tables[name]; ok {
		return nil, fmt.Errorf("class %q is already defined", name)
	}
	if parent != nil && parent.reg != r {
		return nil, fmt.Errorf("class %q: parent table %q belongs to a different registry", name, parent.name)
	}

	t := newTable(r, name, parent)
	for slotName, s := range bindings {
		id := r.selectors.Lookup(slotName)
		if id < 0 {
			return nil, fmt.Errorf("class %q binds unknown slot %q", name, slotName)
		}
		t.bind(id, s)
	}
	for _, id := range r.shape {
		if t.Lookup(id) == nil {
			return nil, fmt.Errorf("class %q leaves slot %q unbound", name, r.selectors.Name(id))
		}
	}

	t.fp = digestTable(t)
	r.tables[name] = t
	r.order = append(r.order, name)
	return t, nil
}

// MustDefine is Define for bootstrap paths, where a definition error
// is a programming bug.
func (r *Registry) MustDefine(name string, parent *Table, bindings map[string]Slot) *Table {
	t, err := r.Define(name, parent, bindings)
	if err != nil {
		panic(fmt.Sprintf("dispatch: %v", err))
	}
	return t
}

// Seal freezes the registry. Define errors afterwards; lookups keep
// working. Sealing twice is harmless.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has run.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns the table defined under name.
func (r *Registry) Lookup(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// Names returns the class names in definition order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of defined classes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}
