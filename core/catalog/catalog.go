package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a key with no catalog entry.
	ErrNotFound = errors.New("recipe not found")
	// ErrInFlight reports an entry that cannot be removed while its
	// crafting job is live.
	ErrInFlight = errors.New("recipe has a crafting job in flight")
)

// Catalog is the ordered collection of recipes. Order is preserved so
// work discovery scans entries deterministically.
type Catalog struct {
	recipes []*Recipe
}

// New returns an empty catalog.
func New(recipes ...*Recipe) *Catalog {
	return &Catalog{recipes: recipes}
}

// Recipes returns the backing slice. Callers must not mutate it outside
// the scheduler goroutine; learning passes append through Add.
func (c *Catalog) Recipes() []*Recipe {
	return c.recipes
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Add appends a recipe to the catalog.
func (c *Catalog) Add(r *Recipe) {
	c.recipes = append(c.recipes, r)
}

// Find returns the recipe with the given key, or nil.
func (c *Catalog) Find(key string) *Recipe {
	for _, r := range c.recipes {
		if r.Key() == key {
			return r
		}
	}
	return nil
}

// Remove deletes the recipe with the given key. It returns an error if
// no such recipe exists or if it still has a live crafting job.
func (c *Catalog) Remove(key string) error {
	for i, r := range c.recipes {
		if r.Key() != key {
			continue
		}
		if r.InFlight() {
			return fmt.Errorf("%s: %w", key, ErrInFlight)
		}
		c.recipes = append(c.recipes[:i], c.recipes[i+1:]...)
		return nil
	}
	return fmt.Errorf("%s: %w", key, ErrNotFound)
}

// Ongoing counts recipes holding a live crafting job.
func (c *Catalog) Ongoing() int {
	count := 0
	for _, r := range c.recipes {
		if r.InFlight() {
			count++
		}
	}
	return count
}
