package engine

import (
	"context"
	"fmt"
	"math"

	"craftwarden/core/catalog"
	"craftwarden/core/item"
	"craftwarden/core/network"
)

// matchEntry pairs a recipe with the inventory items sharing its key.
type matchEntry struct {
	recipe  *catalog.Recipe
	matches []network.Item
}

// matchAll runs the full matching pass: it indexes the catalog by
// identity key, correlates each inventory item against it, and
// recomputes every recipe's stored quantity and error state. With learn
// set, craftable items not yet tracked are added to the catalog with
// wanted 0; new entries are indexed immediately, so they participate in
// the remainder of the same pass.
func (e *Engine) matchAll(ctx context.Context, items []network.Item, learn bool) error {
	index := make(map[string]*matchEntry, e.catalog.Len())
	entries := make([]*matchEntry, 0, e.catalog.Len())
	for _, r := range e.catalog.Recipes() {
		entry := &matchEntry{recipe: r}
		index[r.Key()] = entry
		entries = append(entries, entry)
	}

	for _, it := range items {
		key := it.Key()
		if entry, ok := index[key]; ok {
			entry.matches = append(entry.matches, it)
			continue
		}
		if !learn || !it.Craftable {
			continue
		}

		id := item.Identity{Name: it.Name, Damage: int(math.Floor(it.Damage))}
		if it.HasTag {
			// Tag data is opaque to the bridge; the display label is the
			// only discriminant available against key collisions.
			id.Label = it.Label
		}
		r := &catalog.Recipe{Identity: id, Label: it.Label}
		e.catalog.Add(r)
		e.dirty = true

		entry := &matchEntry{recipe: r, matches: []network.Item{it}}
		index[key] = entry
		entries = append(entries, entry)
	}

	for _, entry := range entries {
		r := entry.recipe
		// Errors are recomputed from scratch each pass; a stale error
		// must not keep excluding a recipe whose condition cleared.
		r.Error = ""

		matched := filterMatches(entry.matches, r.Identity)
		switch len(matched) {
		case 0:
			r.Stored = 0
		case 1:
			r.Stored = int(math.Floor(matched[0].Size))
			r.Craftable = matched[0].Craftable
		default:
			r.Stored = 0
			r.Error = fmt.Sprintf("%s:%d match %d items", r.Identity.Name, r.Identity.Damage, len(matched))
		}

		// Catch jobs that finished or failed between cycles.
		if _, err := e.checkJob(ctx, r); err != nil {
			return err
		}

		// Fail fast when demand exists but the network has no pattern
		// for the matched item, instead of letting discovery find out.
		if r.Error == "" && r.Wanted > 0 && len(matched) == 1 && !matched[0].Craftable {
			r.Error = errNoPattern
		}
	}
	return nil
}

// filterMatches guards against key collisions from floored damage or
// shared labels: only items structurally containing the recipe's
// identity count as matches.
func filterMatches(matches []network.Item, id item.Identity) []network.Item {
	needle := id.Record()
	filtered := matches[:0:0]
	for _, it := range matches {
		if item.Contains(it.Record(), needle) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
