package dispatch

import "fmt"

// Header is the receiver record: a reference to the currently active
// dispatch table plus one integer of instance data.
//
// The zero value is an unconstructed header. Construct (or a class's
// construction routine) must run before the header is dispatched on.
// Send reads the table reference without checking it, the same
// precondition real dispatch imposes, so sending to an unconstructed
// header is undefined behavior (in practice a nil dereference).
//
// Headers are cheap, caller-owned values; stack allocation is the
// intended use. Nothing retains a header after a send returns, and no
// teardown step exists beyond the storage going out of scope.
type Header struct {
	table   *Table
	payload int64
}

// Construct initializes o to behave as the class t belongs to. Any
// payload is accepted; there is nothing to validate.
func Construct(o *Header, t *Table, payload int64) {
	o.table = t
	o.payload = payload
}

// NewHeader allocates and constructs a header in one step.
func NewHeader(t *Table, payload int64) *Header {
	o := &Header{}
	Construct(o, t, payload)
	return o
}

// Table returns the currently active dispatch table.
func (o *Header) Table() *Table { return o.table }

// Payload returns the instance data.
func (o *Header) Payload() int64 { return o.payload }

// SetPayload replaces the instance data.
func (o *Header) SetPayload(v int64) { o.payload = v }

// Retarget reassigns the header's table reference, changing every
// subsequent dispatch outcome for this header while leaving payload
// and identity untouched. Nothing checks that the new table is
// shape-compatible with the old one; shape compatibility is a registry
// convention, not an enforced invariant.
func (o *Header) Retarget(t *Table) { o.table = t }

// ClassName returns the name of the current table, or "?" for an
// unconstructed header.
func (o *Header) ClassName() string {
	if o.table == nil {
		return "?"
	}
	return o.table.name
}

func (o *Header) String() string {
	return fmt.Sprintf("%s(payload=%d)", o.ClassName(), o.payload)
}
