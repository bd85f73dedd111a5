package status

import (
	"context"
	"errors"
	"strings"

	"craftwarden/core/catalog"
	"craftwarden/core/engine"
	"craftwarden/core/item"

	"go.uber.org/zap"
)

// UpsertRequest carries one catalog edit. Name and Damage (plus the
// optional IdentityLabel) identify the entry; Label and Wanted are what
// gets written.
type UpsertRequest struct {
	Name          string `json:"name"`
	Damage        int    `json:"damage"`
	IdentityLabel string `json:"identity_label"`
	Label         string `json:"label"`
	Wanted        int    `json:"wanted"`
}

// Validate checks the request before it reaches the catalog.
func (r UpsertRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Wanted < 0 {
		return errors.New("wanted must not be negative")
	}
	return nil
}

// Service mediates between the HTTP layer and the scheduler. Reads go
// straight to the engine's published snapshot; writes are serialized
// through the scheduler.
type Service struct {
	engine *engine.Engine
	sched  *engine.Scheduler
	logger *zap.Logger
}

// NewService creates a new status service.
func NewService(e *engine.Engine, sched *engine.Scheduler, logger *zap.Logger) *Service {
	return &Service{engine: e, sched: sched, logger: logger}
}

// Snapshot returns the last published engine view.
func (s *Service) Snapshot() engine.Snapshot {
	return s.engine.Snapshot()
}

// UpsertRecipe creates or updates a catalog entry and waits for the
// persist.
func (s *Service) UpsertRecipe(ctx context.Context, req UpsertRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	id := item.Identity{Name: req.Name, Damage: req.Damage, Label: req.IdentityLabel}
	return s.sched.Edit(ctx, func(c *catalog.Catalog) error {
		if existing := c.Find(id.Key()); existing != nil {
			existing.Wanted = req.Wanted
			if req.Label != "" {
				existing.Label = req.Label
			}
			return nil
		}

		label := req.Label
		if label == "" {
			label = req.Name
		}
		c.Add(&catalog.Recipe{Identity: id, Label: label, Wanted: req.Wanted})
		return nil
	})
}

// RemoveRecipe deletes a catalog entry by key.
func (s *Service) RemoveRecipe(ctx context.Context, key string) error {
	return s.sched.Edit(ctx, func(c *catalog.Catalog) error {
		return c.Remove(key)
	})
}

// RequestCycle asks for an out-of-band full cycle.
func (s *Service) RequestCycle(learn bool) {
	s.sched.RequestRun(learn)
}

// RequestPoll asks for an out-of-band job poll.
func (s *Service) RequestPoll() {
	s.sched.RequestPoll()
}
