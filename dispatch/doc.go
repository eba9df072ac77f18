// Package dispatch implements manual virtual dispatch: the structures
// a compiler normally synthesizes for dynamic calls, built by hand so
// the mechanism itself is visible.
//
// This package contains:
//   - Selector interning (slot names to dense numeric IDs)
//   - Immutable dispatch tables with parent-chain lookup
//   - Object headers holding a table reference plus instance data
//   - A registry of process-wide singleton tables with a fixed slot shape
//   - The generic send routine and per-call-site inline caches
//   - Send statistics and content-derived table fingerprints
package dispatch
