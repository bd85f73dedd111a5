package engine

import "time"

// Status is the aggregate recomputed at the end of each full cycle.
// It is read by the presentation layer only.
type Status struct {
	// CycleDuration is the wall time of the last full cycle.
	CycleDuration time.Duration `json:"cycle_duration"`
	// LastCycle is when the last full cycle finished.
	LastCycle time.Time `json:"last_cycle"`
	// CPUTotal and CPUFree describe the pool as last observed.
	CPUTotal int `json:"cpu_total"`
	CPUFree  int `json:"cpu_free"`
	// Errors counts recipes with a resolution or crafting error.
	Errors int `json:"errors"`
	// Crafting counts recipes with a job in flight.
	Crafting int `json:"crafting"`
	// Queued counts recipes still missing quantity, with neither an
	// error nor a job.
	Queued int `json:"queued"`
}

// RecipeView is the read-only projection of a recipe served by the
// status API.
type RecipeView struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Damage   int    `json:"damage"`
	Label    string `json:"label"`
	Wanted   int    `json:"wanted"`
	Stored   int    `json:"stored"`
	Crafting bool   `json:"crafting"`
	Error    string `json:"error,omitempty"`
}

// Snapshot is the consistent view published after every cycle and edit.
type Snapshot struct {
	Status  Status       `json:"status"`
	Recipes []RecipeView `json:"recipes"`
}

// recomputeStatus rebuilds the aggregate from the catalog.
func (e *Engine) recomputeStatus(cpuTotal, cpuFree int, elapsed time.Duration) {
	status := Status{
		CycleDuration: elapsed,
		LastCycle:     time.Now(),
		CPUTotal:      cpuTotal,
		CPUFree:       cpuFree,
	}
	for _, r := range e.catalog.Recipes() {
		switch {
		case r.Error != "":
			status.Errors++
		case r.InFlight():
			status.Crafting++
		case r.Stored < r.Wanted:
			status.Queued++
		}
	}
	e.status = status
}

// publish refreshes the snapshot served to readers outside the
// scheduler goroutine.
func (e *Engine) publish() {
	recipes := make([]RecipeView, 0, e.catalog.Len())
	for _, r := range e.catalog.Recipes() {
		recipes = append(recipes, RecipeView{
			Key:      r.Key(),
			Name:     r.Identity.Name,
			Damage:   r.Identity.Damage,
			Label:    r.Label,
			Wanted:   r.Wanted,
			Stored:   r.Stored,
			Crafting: r.InFlight(),
			Error:    r.Error,
		})
	}

	e.mu.Lock()
	e.published = Snapshot{Status: e.status, Recipes: recipes}
	e.mu.Unlock()
}

// Snapshot returns the last published view. Safe for concurrent use.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.published
}
