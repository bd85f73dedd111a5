package engine

import (
	"context"

	"craftwarden/core/catalog"
	"craftwarden/core/item"
	"craftwarden/core/network"
)

// fakeNetwork implements all four backend interfaces with canned data
// and optional function hooks.
type fakeNetwork struct {
	items    []network.Item
	itemsErr error
	itemsFn  func() ([]network.Item, error)

	cpus    []network.CPU
	cpusErr error

	patternsFn   func(id item.Identity) ([]network.Pattern, error)
	patternCalls []item.Identity

	submitFn func(pattern network.Pattern, amount int) (network.Job, error)
	submits  []submission
}

type submission struct {
	pattern network.Pattern
	amount  int
}

func (f *fakeNetwork) Items(ctx context.Context) ([]network.Item, error) {
	if f.itemsFn != nil {
		return f.itemsFn()
	}
	return f.items, f.itemsErr
}

func (f *fakeNetwork) CPUs(ctx context.Context) ([]network.CPU, error) {
	return f.cpus, f.cpusErr
}

func (f *fakeNetwork) PatternsFor(ctx context.Context, id item.Identity) ([]network.Pattern, error) {
	f.patternCalls = append(f.patternCalls, id)
	if f.patternsFn != nil {
		return f.patternsFn(id)
	}
	return nil, nil
}

func (f *fakeNetwork) Submit(ctx context.Context, pattern network.Pattern, amount int) (network.Job, error) {
	f.submits = append(f.submits, submission{pattern: pattern, amount: amount})
	if f.submitFn != nil {
		return f.submitFn(pattern, amount)
	}
	return &fakeJob{}, nil
}

func (f *fakeNetwork) backend() Backend {
	return Backend{Inventory: f, Pool: f, Patterns: f, Submitter: f}
}

// fakeJob is a scriptable job handle counting its checks.
type fakeJob struct {
	done        bool
	canceled    bool
	canceledErr error
	doneErr     error
	checks      int
}

func (j *fakeJob) Canceled(ctx context.Context) (bool, error) {
	j.checks++
	return j.canceled, j.canceledErr
}

func (j *fakeJob) Done(ctx context.Context) (bool, error) {
	return j.done, j.doneErr
}

// invItem builds an inventory item; the field record is synthesized
// from the typed fields.
func invItem(name string, damage float64, label string, size float64, craftable, hasTag bool) network.Item {
	return network.Item{
		Name:      name,
		Damage:    damage,
		Label:     label,
		Size:      size,
		Craftable: craftable,
		HasTag:    hasTag,
	}
}

func wantedRecipe(name string, damage, wanted int) *catalog.Recipe {
	return &catalog.Recipe{
		Identity: item.Identity{Name: name, Damage: damage},
		Label:    name,
		Wanted:   wanted,
	}
}

func onePattern(id string) func(item.Identity) ([]network.Pattern, error) {
	return func(item.Identity) ([]network.Pattern, error) {
		return []network.Pattern{{ID: id}}, nil
	}
}

func freeCPUs(free, busy int) []network.CPU {
	cpus := make([]network.CPU, 0, free+busy)
	for i := 0; i < busy; i++ {
		cpus = append(cpus, network.CPU{Busy: true})
	}
	for i := 0; i < free; i++ {
		cpus = append(cpus, network.CPU{Busy: false})
	}
	return cpus
}
