package engine

import (
	"context"
	"errors"
	"time"

	"craftwarden/core/catalog"

	"go.uber.org/zap"
)

// PersistFunc is notified after every successful catalog persist with
// the durable records just written. Used for catalog backups.
type PersistFunc func(ctx context.Context, records []catalog.RecipeRecord)

type editRequest struct {
	fn    func(*catalog.Catalog) error
	reply chan error
}

// Scheduler drives the engine from a single goroutine. Periodic full
// and poll cycles, out-of-band run/poll signals and catalog edits are
// all serialized through its loop, which is what makes the engine's
// lock-free catalog mutation safe.
type Scheduler struct {
	engine    *Engine
	store     *catalog.Store
	log       *zap.Logger
	cfg       Config
	onPersist PersistFunc

	runNow  chan bool
	pollNow chan struct{}
	edits   chan editRequest
}

// NewScheduler creates a scheduler for the engine. Signals are buffered
// and coalesce: requesting a run while one is already queued is a no-op.
func NewScheduler(e *Engine, store *catalog.Store, log *zap.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		engine:  e,
		store:   store,
		log:     log,
		cfg:     cfg,
		runNow:  make(chan bool, 1),
		pollNow: make(chan struct{}, 1),
		edits:   make(chan editRequest),
	}
}

// OnPersist registers the persist notification hook. Must be called
// before Run.
func (s *Scheduler) OnPersist(fn PersistFunc) {
	s.onPersist = fn
}

// Run blocks until ctx is canceled or a fatal error aborts the loop.
// An initial full cycle runs immediately so the daemon starts from a
// fresh reconciliation rather than waiting out the first interval.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.runFull(ctx, s.cfg.Learn); err != nil {
		return err
	}

	full := time.NewTicker(s.cfg.FullInterval)
	defer full.Stop()
	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-full.C:
			if err := s.runFull(ctx, s.cfg.Learn); err != nil {
				return err
			}
		case learn := <-s.runNow:
			if err := s.runFull(ctx, learn); err != nil {
				return err
			}
		case <-poll.C:
			if err := s.runPoll(ctx); err != nil {
				return err
			}
		case <-s.pollNow:
			if err := s.runPoll(ctx); err != nil {
				return err
			}
		case req := <-s.edits:
			err := req.fn(s.engine.Catalog())
			if err == nil {
				s.engine.MarkDirty()
				s.engine.Publish()
				err = s.persistIfDirty(ctx)
			}
			req.reply <- err
			if err != nil {
				// An edit rejected by fn stays the caller's problem; a
				// failed persist takes the loop down like any other.
				var fatalErr *FatalError
				if errors.As(err, &fatalErr) {
					return err
				}
				continue
			}
			// Re-evaluate right away so the edit takes effect without
			// waiting for the next tick.
			if err := s.runFull(ctx, s.cfg.Learn); err != nil {
				return err
			}
		}
	}
}

// RequestRun asks for an out-of-band full cycle. Never blocks; a cycle
// already queued absorbs the request.
func (s *Scheduler) RequestRun(learn bool) {
	select {
	case s.runNow <- learn:
	default:
	}
}

// RequestPoll asks for an out-of-band poll cycle. Never blocks.
func (s *Scheduler) RequestPoll() {
	select {
	case s.pollNow <- struct{}{}:
	default:
	}
}

// Edit runs fn against the catalog on the scheduler goroutine and
// persists the result. It blocks until the edit is applied or ctx is
// done; a cycle in progress finishes first.
func (s *Scheduler) Edit(ctx context.Context, fn func(*catalog.Catalog) error) error {
	req := editRequest{fn: fn, reply: make(chan error, 1)}
	select {
	case s.edits <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runFull(ctx context.Context, learn bool) error {
	if err := s.engine.RunFull(ctx, learn); err != nil {
		return err
	}
	return s.persistIfDirty(ctx)
}

func (s *Scheduler) runPoll(ctx context.Context) error {
	refresh, err := s.engine.RunPoll(ctx)
	if err != nil {
		return err
	}
	if refresh {
		return s.runFull(ctx, s.cfg.Learn)
	}
	return nil
}

// persistIfDirty writes the catalog when it changed. A persistence
// failure is fatal; continuing with an unsaved catalog risks silently
// losing learned or edited entries.
func (s *Scheduler) persistIfDirty(ctx context.Context) error {
	if !s.engine.Dirty() {
		return nil
	}
	if err := s.store.Save(s.engine.Catalog()); err != nil {
		return fatal("catalog persist", err)
	}
	s.engine.ClearDirty()
	s.log.Info("Catalog persisted", zap.Int("recipes", s.engine.Catalog().Len()))

	if s.onPersist != nil {
		s.onPersist(ctx, catalog.Records(s.engine.Catalog()))
	}
	return nil
}
