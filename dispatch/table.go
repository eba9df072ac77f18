package dispatch

import "encoding/hex"

// Table is the immutable slot collection for one class.
//
// Slots are indexed by interned selector ID. A table may have a parent;
// Lookup walks the chain, so a class binds locally only the slots it
// overrides. Tables are built by Registry.Define and never change
// afterwards, which is what makes them safe to share across any number
// of headers.
//
// A header holds a plain reference to its table. Nothing here tracks
// which headers point at a table; the reference is one-way.
type Table struct {
	name   string
	parent *Table
	slots  []Slot
	reg    *Registry
	fp     [32]byte
}

func newTable(reg *Registry, name string, parent *Table) *Table {
	return &Table{
		name:   name,
		parent: parent,
		reg:    reg,
		slots:  make([]Slot, 0, 8),
	}
}

// bind installs a slot under a selector ID. Only the registry calls
// this, before the table is published.
func (t *Table) bind(selector int, s Slot) {
	for len(t.slots) <= selector {
		t.slots = append(t.slots, nil)
	}
	t.slots[selector] = s
}

// Lookup resolves a selector against this table, walking the parent
// chain when the slot is not bound locally. Returns nil when no table
// in the chain covers the selector.
func (t *Table) Lookup(selector int) Slot {
	for tab := t; tab != nil; tab = tab.parent {
		if selector >= 0 && selector < len(tab.slots) {
			if s := tab.slots[selector]; s != nil {
				return s
			}
		}
	}
	return nil
}

// LookupLocal resolves a selector against this table only, ignoring
// the parent chain.
func (t *Table) LookupLocal(selector int) Slot {
	if selector < 0 || selector >= len(t.slots) {
		return nil
	}
	return t.slots[selector]
}

// Covers reports whether the selector resolves somewhere in the chain.
func (t *Table) Covers(selector int) bool {
	return t.Lookup(selector) != nil
}

// Name returns the class name the table was defined under.
func (t *Table) Name() string { return t.name }

// Parent returns the parent table, or nil for a root table.
func (t *Table) Parent() *Table { return t.parent }

// SlotCount returns the number of locally bound slots.
func (t *Table) SlotCount() int {
	n := 0
	for _, s := range t.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// SelectorName resolves a selector ID to its name through the owning
// registry's selector table.
func (t *Table) SelectorName(selector int) string {
	return t.reg.Selectors().Name(selector)
}

// Fingerprint returns the content-derived identity of the table. Two
// tables with the same name, parentage, and slot labels fingerprint
// identically across runs and platforms.
func (t *Table) Fingerprint() [32]byte { return t.fp }

// ShortFingerprint returns the first four fingerprint bytes as hex,
// the form the demonstration sequence prints.
func (t *Table) ShortFingerprint() string {
	return hex.EncodeToString(t.fp[:4])
}
