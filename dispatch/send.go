package dispatch

import (
	"fmt"
	"io"
)

// Env carries the ambient surface of one run of the mechanism: the
// sink slots write to, plus optional observers. Slots receive it on
// every invocation, which keeps the shared tables free of I/O state
// and lets tests dispatch the process-wide singletons into private
// buffers.
type Env struct {
	// Out is where slots write. Required.
	Out io.Writer

	// Stats, when non-nil, counts every send.
	Stats *Stats

	// OnSend, when non-nil, observes every send after resolution and
	// before the slot runs.
	OnSend func(SendEvent)
}

// NewEnv returns an Env writing to out, with no observers attached.
func NewEnv(out io.Writer) *Env { return &Env{Out: out} }

// SendEvent describes one resolved send.
type SendEvent struct {
	Class    string // table name the send resolved through
	Selector string // slot name, e.g. "foo"
	Slot     string // resolved slot label, e.g. "Derived::foo"
	Payload  int64  // receiver payload at send time
}

// Send dispatches selector on o: it reads the header's current table,
// resolves the slot through the parent chain, and invokes it with o
// as the receiver.
//
// Resolution is determined solely by the table reference at call
// time, not by anything recorded at construction; retargeting between
// two sends changes the second outcome.
//
// Precondition: o has been constructed. The table reference is read
// without a nil check. Send panics when the chain does not cover
// selector; the registry's shape checks make that unreachable for
// registry-defined tables.
func Send(env *Env, o *Header, selector int) {
	t := o.table
	s := t.Lookup(selector)
	if s == nil {
		panic(fmt.Sprintf("dispatch: %q does not understand %q", t.name, t.SelectorName(selector)))
	}
	invoke(env, o, t, selector, s)
}

// invoke notifies observers and runs the slot. CallSite sends funnel
// through here too, so cached and uncached sends observe identically.
func invoke(env *Env, o *Header, t *Table, selector int, s Slot) {
	if env.Stats != nil || env.OnSend != nil {
		selName := t.SelectorName(selector)
		if env.Stats != nil {
			env.Stats.Record(t.name, selName)
		}
		if env.OnSend != nil {
			env.OnSend(SendEvent{
				Class:    t.name,
				Selector: selName,
				Slot:     SlotLabel(s),
				Payload:  o.payload,
			})
		}
	}
	s.Invoke(env, o)
}
