// Package network defines the interfaces the reconciliation engine uses
// to talk to the crafting network, plus the read-only value types those
// interfaces exchange.
//
// The engine never talks to the in-world bridge directly; it consumes
// these interfaces so tests can substitute fakes and so the bridge
// transport can evolve independently. The concrete HTTP implementation
// lives in the bridge subpackage, testify mocks in mocks.
//
// All calls hit a single shared external resource. The engine issues
// them from one goroutine at a time; implementations do not need to be
// safe for concurrent use by multiple cycles.
package network
