// Package demo binds the dispatch machinery to the two classic
// classes, Base and Derived, and drives the fixed demonstration
// sequence over them.
package demo

import (
	"fmt"
	"sync"

	"github.com/chazu/vtab/dispatch"
)

// Slot names making up the shared table shape.
const (
	SlotDestroy = "destroy"
	SlotFoo     = "foo"
	SlotBar     = "bar"
)

var (
	bootOnce sync.Once
	registry *dispatch.Registry
	base     *dispatch.Table
	derived  *dispatch.Table

	selDestroy int
	selFoo     int
	selBar     int
)

// bootstrap defines the process-wide singleton tables and seals the
// registry. A definition error here is a programming bug, hence
// MustDefine.
func bootstrap() {
	registry = dispatch.NewRegistry(SlotDestroy, SlotFoo, SlotBar)
	selDestroy = registry.Selectors().Lookup(SlotDestroy)
	selFoo = registry.Selectors().Lookup(SlotFoo)
	selBar = registry.Selectors().Lookup(SlotBar)

	base = registry.MustDefine("Base", nil, map[string]dispatch.Slot{
		SlotDestroy: dispatch.NewSlot("Base::destroy", baseDestroy),
		SlotFoo:     dispatch.NewSlot("Base::foo", baseFoo),
		SlotBar:     dispatch.NewSlot("Base::bar", baseBar),
	})
	derived = registry.MustDefine("Derived", base, map[string]dispatch.Slot{
		SlotDestroy: dispatch.NewSlot("Derived::destroy", derivedDestroy),
		SlotFoo:     dispatch.NewSlot("Derived::foo", derivedFoo),
		SlotBar:     dispatch.NewSlot("Derived::bar", derivedBar),
	})
	registry.Seal()
}

// Each slot writes one line identifying the class that handled the
// send and the receiver's payload. The destroy slots only write; no
// memory is freed because none was allocated, headers being
// caller-owned storage.

func baseFoo(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintf(env.Out, "[Base::foo] payload=%d\n", recv.Payload())
}

func baseBar(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintf(env.Out, "[Base::bar] payload=%d\n", recv.Payload())
}

func baseDestroy(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintln(env.Out, "[Base::destroy] tearing down")
}

func derivedFoo(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintf(env.Out, "[Derived::foo] payload=%d (overrides Base::foo)\n", recv.Payload())
}

func derivedBar(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintf(env.Out, "[Derived::bar] payload=%d (overrides Base::bar)\n", recv.Payload())
}

func derivedDestroy(env *dispatch.Env, recv *dispatch.Header) {
	fmt.Fprintln(env.Out, "[Derived::destroy] tearing down (Base teardown would follow)")
}

// Registry returns the sealed demonstration registry.
func Registry() *dispatch.Registry {
	bootOnce.Do(bootstrap)
	return registry
}

// BaseTable returns the shared Base table. Every Base header holds
// this exact instance.
func BaseTable() *dispatch.Table {
	bootOnce.Do(bootstrap)
	return base
}

// DerivedTable returns the shared Derived table.
func DerivedTable() *dispatch.Table {
	bootOnce.Do(bootstrap)
	return derived
}

// DestroySelector returns the interned ID of the destroy slot.
func DestroySelector() int {
	bootOnce.Do(bootstrap)
	return selDestroy
}

// FooSelector returns the interned ID of the foo slot.
func FooSelector() int {
	bootOnce.Do(bootstrap)
	return selFoo
}

// BarSelector returns the interned ID of the bar slot.
func BarSelector() int {
	bootOnce.Do(bootstrap)
	return selBar
}

// ConstructBase initializes the caller-owned header o as a Base with
// the given payload.
func ConstructBase(o *dispatch.Header, payload int64) {
	dispatch.Construct(o, BaseTable(), payload)
}

// ConstructDerived initializes the caller-owned header o as a Derived
// with the given payload.
func ConstructDerived(o *dispatch.Header, payload int64) {
	dispatch.Construct(o, DerivedTable(), payload)
}

// CallDestroy dispatches destroy on o through its current table.
func CallDestroy(env *dispatch.Env, o *dispatch.Header) {
	dispatch.Send(env, o, DestroySelector())
}

// CallFoo dispatches foo on o through its current table.
func CallFoo(env *dispatch.Env, o *dispatch.Header) {
	dispatch.Send(env, o, FooSelector())
}

// CallBar dispatches bar on o through its current table.
func CallBar(env *dispatch.Env, o *dispatch.Header) {
	dispatch.Send(env, o, BarSelector())
}
