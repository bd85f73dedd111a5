package engine

import (
	"context"

	"craftwarden/core/catalog"
	"craftwarden/core/network"
)

// candidate is one dispatchable unit of work found by discovery.
type candidate struct {
	recipe  *catalog.Recipe
	needed  int
	pattern network.Pattern
}

// discovery scans the catalog for recipes eligible for dispatch. It is
// created fresh for every full cycle and keeps its scan position, so
// each Next call performs at most one pattern resolution before control
// returns to the cycle loop. A recipe with an error, a live job, or no
// missing quantity is skipped without touching the backend.
type discovery struct {
	patterns network.PatternSource
	recipes  []*catalog.Recipe
	pos      int
}

func newDiscovery(patterns network.PatternSource, c *catalog.Catalog) *discovery {
	return &discovery{patterns: patterns, recipes: c.Recipes()}
}

// Next returns the next candidate, or nil once the catalog is
// exhausted. Pattern resolution failures are backend trouble; zero or
// multiple resolved patterns are recorded on the recipe and the scan
// moves on.
func (d *discovery) Next(ctx context.Context) (*candidate, error) {
	for d.pos < len(d.recipes) {
		r := d.recipes[d.pos]
		d.pos++

		if r.Error != "" || r.InFlight() {
			continue
		}
		needed := r.Needed()
		if needed <= 0 {
			continue
		}

		patterns, err := d.patterns.PatternsFor(ctx, r.Identity)
		if err != nil {
			return nil, fatal("pattern resolution", err)
		}
		switch len(patterns) {
		case 0:
			r.Error = errNoPatternFound
		case 1:
			return &candidate{recipe: r, needed: needed, pattern: patterns[0]}, nil
		default:
			r.Error = errMultiplePatterns
		}
	}
	return nil, nil
}
