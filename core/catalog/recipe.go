package catalog

import (
	"craftwarden/core/item"
	"craftwarden/core/network"
)

// Recipe is one catalog entry: an item the network should keep stocked.
type Recipe struct {
	// Identity identifies the item this recipe tracks.
	Identity item.Identity
	// Label is the item's display name.
	Label string
	// Wanted is the desired stored quantity. Durable.
	Wanted int
	// Stored is the quantity observed during the last full cycle.
	Stored int
	// Craftable mirrors the inventory's craftable flag for the matched
	// item, valid only after a cycle in which exactly one item matched.
	Craftable bool
	// Job is the handle of the in-flight crafting request, if any.
	Job network.Job
	// Error is the recipe's current resolution or crafting error. A
	// recipe with a non-empty Error is excluded from work discovery; the
	// field is cleared and recomputed at the start of every full cycle.
	Error string
}

// Key returns the recipe's catalog index key.
func (r *Recipe) Key() string {
	return r.Identity.Key()
}

// Needed returns how many units are still missing.
func (r *Recipe) Needed() int {
	return r.Wanted - r.Stored
}

// InFlight reports whether the recipe has a live crafting job.
func (r *Recipe) InFlight() bool {
	return r.Job != nil
}
