package demo

import (
	"fmt"

	"github.com/chazu/vtab/dispatch"
)

// Run writes the fixed demonstration sequence to env.Out and returns.
//
// The transcript is byte-stable from run to run except the two table
// pointers in the identity section, which vary the way addresses do
// in the mechanism being modeled; the fingerprints beside them do
// not. Observers on env (statistics, send hook) see every dispatch
// the sequence performs.
//
// Both headers live in this frame. Nothing deallocates them; the
// destroy sends at the end are ordinary dispatches, and the storage
// goes out of scope when Run returns.
func Run(env *dispatch.Env) {
	out := env.Out

	fmt.Fprintln(out, "=== constructing objects ===")
	var a, b dispatch.Header
	ConstructBase(&a, 10)
	ConstructDerived(&b, 42)
	fmt.Fprintln(out, "a := Base(payload=10)")
	fmt.Fprintln(out, "b := Derived(payload=42)")

	fmt.Fprintln(out, "\n=== table identities (shared per class) ===")
	fmt.Fprintf(out, "a.table = %p (Base, fp %s)\n", a.Table(), a.Table().ShortFingerprint())
	fmt.Fprintf(out, "b.table = %p (Derived, fp %s)\n", b.Table(), b.Table().ShortFingerprint())

	fmt.Fprintln(out, "\n=== indirect calls through the table ===")
	CallFoo(env, &a)
	CallBar(env, &a)
	CallFoo(env, &b)
	CallBar(env, &b)

	// One call site per selector, shared across both receivers, so
	// the caches go monomorphic on a and polymorphic on b.
	fmt.Fprintln(out, "\n=== polymorphic dispatch over a mixed sequence ===")
	fooSite := dispatch.NewCallSite(FooSelector())
	barSite := dispatch.NewCallSite(BarSelector())
	for _, o := range []*dispatch.Header{&a, &b} {
		fooSite.Send(env, o)
		barSite.Send(env, o)
	}

	fmt.Fprintln(out, "\n=== retargeting a to the Derived table ===")
	a.Retarget(DerivedTable())
	CallFoo(env, &a)
	CallBar(env, &a)

	fmt.Fprintln(out, "\n=== teardown through the destroy slot ===")
	CallDestroy(env, &a)
	CallDestroy(env, &b)

	fmt.Fprintln(out, "\n(done)")
}
