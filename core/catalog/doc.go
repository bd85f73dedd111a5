// Package catalog holds the in-memory collection of desired items and
// its durable representation.
//
// A Recipe correlates an item identity with a desired quantity and the
// live state the engine maintains for it (stored amount, in-flight job,
// last resolution error). Only identity, display label and wanted count
// are durable; everything else is recomputed every full reconciliation
// cycle and never persisted.
//
// The catalog is mutated exclusively from the scheduler goroutine, so it
// carries no locking of its own.
package catalog
