package engine

import (
	"context"
	"testing"

	"craftwarden/core/catalog"
	"craftwarden/core/item"
	"craftwarden/core/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(c *catalog.Catalog, f *fakeNetwork, cfg Config) *Engine {
	return New(zap.NewNop(), c, f.backend(), cfg)
}

func TestMatchAll_StoredComputation(t *testing.T) {
	ctx := context.Background()

	t.Run("NoMatch", func(t *testing.T) {
		c := catalog.New(wantedRecipe("minecraft:iron_ingot", 0, 64))
		c.Recipes()[0].Stored = 42 // stale from a previous cycle
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		require.NoError(t, e.matchAll(ctx, nil, false))
		assert.Equal(t, 0, c.Recipes()[0].Stored)
		assert.Empty(t, c.Recipes()[0].Error)
	})

	t.Run("SingleMatch", func(t *testing.T) {
		c := catalog.New(wantedRecipe("minecraft:iron_ingot", 0, 64))
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{invItem("minecraft:iron_ingot", 0, "Iron Ingot", 120.9, true, false)}
		require.NoError(t, e.matchAll(ctx, items, false))

		r := c.Recipes()[0]
		assert.Equal(t, 120, r.Stored, "size is floored")
		assert.True(t, r.Craftable)
		assert.Empty(t, r.Error)
	})

	t.Run("AmbiguousMatch", func(t *testing.T) {
		// Two stacks share name and damage; the catalog entry has no
		// label discriminant, so both land on its key.
		c := catalog.New(wantedRecipe("minecraft:enchanted_book", 0, 4))
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{
			invItem("minecraft:enchanted_book", 0, "Sharpness V", 3, true, false),
			invItem("minecraft:enchanted_book", 0, "Protection IV", 2, true, false),
		}
		require.NoError(t, e.matchAll(ctx, items, false))

		r := c.Recipes()[0]
		assert.Equal(t, 0, r.Stored)
		assert.Equal(t, "minecraft:enchanted_book:0 match 2 items", r.Error)
	})

	t.Run("ContainmentFiltersCollisions", func(t *testing.T) {
		// Same key, but one record fails the structural test.
		c := catalog.New(&catalog.Recipe{
			Identity: item.Identity{Name: "minecraft:potion", Damage: 0, Label: "Potion of Healing"},
			Label:    "Potion of Healing",
			Wanted:   8,
		})
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{
			invItem("minecraft:potion", 0, "Potion of Healing", 5, true, true),
			{
				Name: "minecraft:potion", Damage: 0, Label: "Potion of Healing",
				Size: 7, Craftable: true, HasTag: true,
				Fields: map[string]any{"name": "minecraft:potion", "damage": 0.0, "label": "Potion of Healing II"},
			},
		}
		require.NoError(t, e.matchAll(ctx, items, false))

		r := c.Recipes()[0]
		assert.Equal(t, 5, r.Stored)
		assert.Empty(t, r.Error)
	})
}

func TestMatchAll_Learning(t *testing.T) {
	ctx := context.Background()

	t.Run("LearnsCraftableItems", func(t *testing.T) {
		c := catalog.New()
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{
			invItem("minecraft:iron_ingot", 0, "Iron Ingot", 64, true, false),
			invItem("minecraft:glass", 0, "Glass", 32, true, false),
			invItem("minecraft:cobblestone", 0, "Cobblestone", 999, false, false),
		}
		require.NoError(t, e.matchAll(ctx, items, true))

		// Craftable items become recipes with wanted 0; the
		// non-craftable stack is ignored.
		require.Equal(t, 2, c.Len())
		for _, r := range c.Recipes() {
			assert.Zero(t, r.Wanted)
			assert.Empty(t, r.Error)
		}
		assert.Equal(t, 64, c.Find("minecraft:iron_ingot:0").Stored)
		assert.True(t, e.Dirty())
	})

	t.Run("LearnsLabelDiscriminantForTaggedItems", func(t *testing.T) {
		c := catalog.New()
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{invItem("minecraft:potion", 0, "Potion of Healing", 3, true, true)}
		require.NoError(t, e.matchAll(ctx, items, true))

		require.Equal(t, 1, c.Len())
		r := c.Recipes()[0]
		assert.Equal(t, "Potion of Healing", r.Identity.Label)
		assert.Equal(t, "minecraft:potion:0:Potion of Healing", r.Key())
	})

	t.Run("LearningDisabled", func(t *testing.T) {
		c := catalog.New()
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{invItem("minecraft:iron_ingot", 0, "Iron Ingot", 64, true, false)}
		require.NoError(t, e.matchAll(ctx, items, false))
		assert.Equal(t, 0, c.Len())
		assert.False(t, e.Dirty())
	})
}

func TestMatchAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(
		wantedRecipe("minecraft:iron_ingot", 0, 64),
		wantedRecipe("minecraft:glass", 0, 32),
	)
	e := newTestEngine(c, &fakeNetwork{}, Config{})

	items := []network.Item{
		invItem("minecraft:iron_ingot", 0, "Iron Ingot", 10, true, false),
		invItem("minecraft:iron_ingot", 0, "Iron Ingot", 10, true, false),
		invItem("minecraft:glass", 0, "Glass", 32, true, false),
	}

	require.NoError(t, e.matchAll(ctx, items, false))
	firstLen := c.Len()
	firstStored := []int{c.Recipes()[0].Stored, c.Recipes()[1].Stored}
	firstErr := []string{c.Recipes()[0].Error, c.Recipes()[1].Error}

	require.NoError(t, e.matchAll(ctx, items, false))
	assert.Equal(t, firstLen, c.Len())
	assert.Equal(t, firstStored, []int{c.Recipes()[0].Stored, c.Recipes()[1].Stored})
	assert.Equal(t, firstErr, []string{c.Recipes()[0].Error, c.Recipes()[1].Error})
}

func TestMatchAll_MissingPatternFailFast(t *testing.T) {
	ctx := context.Background()

	t.Run("DemandWithoutPattern", func(t *testing.T) {
		c := catalog.New(wantedRecipe("minecraft:cobblestone", 0, 128))
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{invItem("minecraft:cobblestone", 0, "Cobblestone", 12, false, false)}
		require.NoError(t, e.matchAll(ctx, items, false))
		assert.Equal(t, "no crafting pattern", c.Recipes()[0].Error)
	})

	t.Run("NoDemandNoError", func(t *testing.T) {
		c := catalog.New(wantedRecipe("minecraft:cobblestone", 0, 0))
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		items := []network.Item{invItem("minecraft:cobblestone", 0, "Cobblestone", 12, false, false)}
		require.NoError(t, e.matchAll(ctx, items, false))
		assert.Empty(t, c.Recipes()[0].Error)
	})

	t.Run("AbsentItemNotFailedFast", func(t *testing.T) {
		// No match at all: craftability is unknown, so discovery gets
		// to resolve patterns instead of failing here.
		c := catalog.New(wantedRecipe("minecraft:glass", 0, 64))
		e := newTestEngine(c, &fakeNetwork{}, Config{})

		require.NoError(t, e.matchAll(ctx, nil, false))
		assert.Empty(t, c.Recipes()[0].Error)
	})
}

func TestMatchAll_ErrorResetEachPass(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(wantedRecipe("minecraft:iron_ingot", 0, 64))
	c.Recipes()[0].Error = "canceled"
	e := newTestEngine(c, &fakeNetwork{}, Config{})

	items := []network.Item{invItem("minecraft:iron_ingot", 0, "Iron Ingot", 64, true, false)}
	require.NoError(t, e.matchAll(ctx, items, false))
	assert.Empty(t, c.Recipes()[0].Error, "stale error cleared once the condition is gone")
}

func TestMatchAll_ChecksInFlightJobs(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(wantedRecipe("minecraft:iron_ingot", 0, 64))
	job := &fakeJob{done: true}
	c.Recipes()[0].Job = job
	e := newTestEngine(c, &fakeNetwork{}, Config{})

	require.NoError(t, e.matchAll(ctx, nil, false))
	assert.Nil(t, c.Recipes()[0].Job, "completed job cleared during the pass")
	assert.Empty(t, c.Recipes()[0].Error)
}
