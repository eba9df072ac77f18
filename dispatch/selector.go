package dispatch

import "sync"

// SelectorTable interns slot names to dense numeric IDs.
//
// Tables index their slots by selector ID, so a send resolves with an
// array index instead of a string comparison. IDs are assigned in
// interning order and stay stable for the life of the table.
//
// Safe for concurrent use. Interning the same name twice returns the
// same ID.
type SelectorTable struct {
	mu     sync.RWMutex
	byName map[string]int
	byID   []string
}

// NewSelectorTable creates an empty selector table.
func NewSelectorTable() *SelectorTable {
	return &SelectorTable{
		byName: make(map[string]int),
		byID:   make([]string, 0, 8),
	}
}

// Intern returns the ID for a slot name, assigning the next free ID if
// the name is new.
func (st *SelectorTable) Intern(name string) int {
	st.mu.RLock()
	if id, ok := st.byName[name]; ok {
		st.mu.RUnlock()
		return id
	}
	st.mu.RUnlock()

	st.mu.Lock()
	defer st.mu.Unlock()

	// Recheck under the write lock; another goroutine may have won.
	if id, ok := st.byName[name]; ok {
		return id
	}

	id := len(st.byID)
	st.byName[name] = id
	st.byID = append(st.byID, name)
	return id
}

// InternAll interns names in order and returns their IDs.
func (st *SelectorTable) InternAll(names ...string) []int {
	ids := make([]int, len(names))
	for i, name := range names {
		ids[i] = st.Intern(name)
	}
	return ids
}

// Lookup returns the ID for a name without interning, or -1 if the name
// has never been interned.
func (st *SelectorTable) Lookup(name string) int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if id, ok := st.byName[name]; ok {
		return id
	}
	return -1
}

// Name returns the slot name for an ID, or "" if the ID is out of range.
func (st *SelectorTable) Name(id int) string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if id < 0 || id >= len(st.byID) {
		return ""
	}
	return st.byID[id]
}

// Len returns the number of interned selectors.
func (st *SelectorTable) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}

// All returns the selector names in ID order as a fresh slice.
func (st *SelectorTable) All() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	names := make([]string, len(st.byID))
	copy(names, st.byID)
	return names
}
