package dispatch

// Slot is one callable entry in a dispatch table.
//
// Every virtual operation here is a procedure over the receiver: it
// takes the environment and the header the send resolved through, and
// returns nothing. Effects are confined to the environment's sink and
// the receiver itself.
type Slot interface {
	Invoke(env *Env, recv *Header)
}

// NamedSlot is implemented by slots that carry a diagnostic label.
type NamedSlot interface {
	Slot
	SlotName() string
}

// SlotFunc adapts a bare function to the Slot interface.
type SlotFunc func(env *Env, recv *Header)

func (f SlotFunc) Invoke(env *Env, recv *Header) { f(env, recv) }

// namedSlot pairs a label with an implementation. The label is what
// traces and statistics report, e.g. "Base::foo".
type namedSlot struct {
	name string
	fn   SlotFunc
}

func (s *namedSlot) Invoke(env *Env, recv *Header) { s.fn(env, recv) }
func (s *namedSlot) SlotName() string              { return s.name }

// NewSlot wraps fn as a labeled slot.
func NewSlot(name string, fn func(env *Env, recv *Header)) Slot {
	return &namedSlot{name: name, fn: fn}
}

// SlotLabel returns the slot's label, or "<anonymous>" for slots that
// do not implement NamedSlot.
func SlotLabel(s Slot) string {
	if n, ok := s.(NamedSlot); ok {
		return n.SlotName()
	}
	return "<anonymous>"
}
