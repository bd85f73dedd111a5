package engine

import "time"

// Config holds configuration for the reconciliation engine and its
// scheduler.
type Config struct {
	// FullInterval is the period between full reconciliation cycles.
	FullInterval time.Duration `mapstructure:"full_interval" default:"60s"`
	// PollInterval is the period between lightweight job polls.
	PollInterval time.Duration `mapstructure:"poll_interval" default:"5s"`
	// AllowedCPUs bounds concurrent crafting jobs. 0 means unlimited;
	// >=1 a fixed cap; a fraction in (0,1) caps the busy share of the
	// pool; a negative value reserves CPUs instead (a fixed count for
	// <=-1, a fraction of the pool for (-1,0)).
	AllowedCPUs float64 `mapstructure:"allowed_cpus" default:"0"`
	// MaxBatch caps the units requested per dispatched job.
	MaxBatch int `mapstructure:"max_batch" default:"64"`
	// Learn controls whether periodic full cycles add catalog entries
	// for craftable items seen in inventory but not yet tracked.
	Learn bool `mapstructure:"learn" default:"false"`
}
