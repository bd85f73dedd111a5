package engine

import (
	"context"
	"sync"
	"time"

	"craftwarden/core/catalog"
	"craftwarden/core/network"

	"go.uber.org/zap"
)

// Backend bundles the crafting-network collaborators the engine drives.
// The bridge client implements all four; tests substitute fakes.
type Backend struct {
	Inventory network.Inventory
	Pool      network.Pool
	Patterns  network.PatternSource
	Submitter network.Submitter
}

// Engine owns the catalog and reconciles it against the network. All
// mutating methods must be called from a single goroutine (the
// scheduler); only Snapshot is safe for concurrent use.
type Engine struct {
	log     *zap.Logger
	backend Backend
	cfg     Config
	catalog *catalog.Catalog
	status  Status
	dirty   bool

	mu        sync.RWMutex
	published Snapshot
}

// New creates an engine over an already-loaded catalog and publishes an
// initial snapshot.
func New(log *zap.Logger, c *catalog.Catalog, backend Backend, cfg Config) *Engine {
	e := &Engine{log: log, backend: backend, cfg: cfg, catalog: c}
	e.publish()
	return e
}

// Catalog exposes the catalog for scheduler-serialized edits.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Dirty reports whether the catalog changed since the last persist.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// MarkDirty flags the catalog as needing a persist.
func (e *Engine) MarkDirty() {
	e.dirty = true
}

// ClearDirty acknowledges a completed persist.
func (e *Engine) ClearDirty() {
	e.dirty = false
}

// Publish refreshes the read-side snapshot. The scheduler calls it
// after edits that bypass a cycle.
func (e *Engine) Publish() {
	e.publish()
}

// RunFull executes a full reconciliation cycle: match the whole catalog
// against a fresh inventory snapshot, then dispatch work until the
// admission policy or the catalog runs out. Any error returned is
// fatal.
func (e *Engine) RunFull(ctx context.Context, learn bool) error {
	start := time.Now()

	items, err := e.backend.Inventory.Items(ctx)
	if err != nil {
		return fatal("inventory snapshot", err)
	}
	if err := e.matchAll(ctx, items, learn); err != nil {
		return err
	}

	disc := newDiscovery(e.backend.Patterns, e.catalog)
	var cpuTotal, cpuFree int
	for {
		cpus, err := e.backend.Pool.CPUs(ctx)
		if err != nil {
			return fatal("cpu snapshot", err)
		}
		cpuTotal = len(cpus)
		cpuFree = 0
		for _, cpu := range cpus {
			if !cpu.Busy {
				cpuFree++
			}
		}

		if !Admit(cpuTotal, e.catalog.Ongoing(), cpuFree, e.cfg.AllowedCPUs) {
			break
		}

		cand, err := disc.Next(ctx)
		if err != nil {
			return err
		}
		if cand == nil {
			break
		}

		amount := cand.needed
		if e.cfg.MaxBatch > 0 && amount > e.cfg.MaxBatch {
			amount = e.cfg.MaxBatch
		}

		job, err := e.backend.Submitter.Submit(ctx, cand.pattern, amount)
		if err != nil {
			return fatal("job submission", err)
		}
		cand.recipe.Job = job
		e.log.Info("Dispatched crafting job",
			zap.String("recipe", cand.recipe.Key()),
			zap.Int("amount", amount))

		// Check once immediately so instant failures (missing
		// resources) surface now instead of a full poll interval later.
		if _, err := e.checkJob(ctx, cand.recipe); err != nil {
			return err
		}
	}

	e.recomputeStatus(cpuTotal, cpuFree, time.Since(start))
	e.publish()
	e.log.Debug("Full cycle finished",
		zap.Duration("elapsed", e.status.CycleDuration),
		zap.Int("errors", e.status.Errors),
		zap.Int("crafting", e.status.Crafting),
		zap.Int("queued", e.status.Queued))
	return nil
}

// RunPoll executes a lightweight cycle: advance every in-flight job
// once. It reports whether a job transitioned, in which case the caller
// should run a full cycle; scanning stops at the first transition since
// a refresh is already owed.
func (e *Engine) RunPoll(ctx context.Context) (bool, error) {
	for _, r := range e.catalog.Recipes() {
		if !r.InFlight() {
			continue
		}
		state, err := e.checkJob(ctx, r)
		if err != nil {
			return false, err
		}
		if state == JobCompleted || state == JobFailed {
			e.publish()
			return true, nil
		}
	}
	return false, nil
}
