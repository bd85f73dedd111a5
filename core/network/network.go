package network

import (
	"context"

	"craftwarden/core/item"
)

// Item is a single stack type as reported by an inventory snapshot.
// It is read-only to the engine and valid for one reconciliation cycle.
type Item struct {
	// Name is the internal item name.
	Name string
	// Damage is the raw damage/metadata value; may be fractional.
	Damage float64
	// Label is the item's display name.
	Label string
	// Size is the stored quantity; may be fractional on some platforms.
	Size float64
	// Craftable reports whether the network holds a crafting pattern
	// producing this item.
	Craftable bool
	// HasTag reports whether the item carries opaque tag data (NBT).
	HasTag bool
	// Fields is the full record the bridge reported for this item,
	// used for structural containment checks.
	Fields map[string]any
}

// Key derives the item's catalog index key. The label discriminant is
// included exactly when the item carries tag data.
func (it Item) Key() string {
	return item.Key(it.Name, it.Damage, it.Label, it.HasTag)
}

// Record returns the item's field record for containment matching. The
// bridge's raw record is used when present; otherwise one is
// synthesized from the typed fields.
func (it Item) Record() map[string]any {
	if it.Fields != nil {
		return it.Fields
	}
	record := map[string]any{
		"name":   it.Name,
		"damage": it.Damage,
		"size":   it.Size,
	}
	if it.Label != "" {
		record["label"] = it.Label
	}
	return record
}

// CPU is a snapshot of one crafting processor.
type CPU struct {
	Busy bool
}

// Pattern describes one way of producing an item, resolved per identity.
// It is opaque to the engine beyond its identifier.
type Pattern struct {
	// ID is the bridge-assigned pattern identifier.
	ID string
	// Output is the display name of the pattern's primary output.
	Output string
}

// Inventory supplies fresh inventory snapshots. A snapshot failure is
// fatal to the cycle requesting it.
type Inventory interface {
	Items(ctx context.Context) ([]Item, error)
}

// Pool supplies snapshots of the crafting CPU pool.
type Pool interface {
	CPUs(ctx context.Context) ([]CPU, error)
}

// PatternSource resolves the crafting patterns matching an identity.
// This is the expensive per-candidate lookup of work discovery.
type PatternSource interface {
	PatternsFor(ctx context.Context, id item.Identity) ([]Pattern, error)
}

// Submitter dispatches a crafting job onto the network.
type Submitter interface {
	Submit(ctx context.Context, pattern Pattern, amount int) (Job, error)
}

// Job is an opaque handle to an in-flight crafting request.
type Job interface {
	// Canceled reports whether the job was canceled. An error from the
	// check itself is treated as a job failure carrying that message,
	// not as backend trouble.
	Canceled(ctx context.Context) (bool, error)
	// Done reports whether the job has finished. An error here indicates
	// backend or communication trouble and is escalated as fatal.
	Done(ctx context.Context) (bool, error)
}
