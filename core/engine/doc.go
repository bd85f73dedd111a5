// Package engine implements the reconciliation and scheduling core.
//
// The engine keeps a catalog of desired items reconciled against the
// crafting network. A full cycle re-matches the whole catalog against a
// fresh inventory snapshot, then dispatches crafting jobs for the items
// still missing, as far as the admission policy allows. A lightweight
// poll cycle only advances the state of in-flight jobs and requests a
// full cycle when one of them finishes.
//
// # Single mutator
//
// All catalog and status mutation happens on the scheduler goroutine.
// Cycles never overlap: the scheduler runs them to completion one at a
// time, so the engine holds no locks around catalog state. The only
// concurrent access is the published snapshot read by the status API,
// which is guarded separately.
//
// # Failure model
//
// Backend trouble (inventory snapshot, completion checks, persistence)
// is fatal: the cycle aborts and the process exits, because matching
// and dispatch decisions over stale or partial data are unsafe. Per-item
// trouble (ambiguous matches, missing patterns, canceled jobs) is
// recorded on the recipe, excludes it from dispatch, and is re-evaluated
// from scratch on every full cycle.
package engine
