package engine

// Admit decides whether another concurrent crafting job may start.
//
// total and free describe the CPU pool snapshot, ongoing counts catalog
// recipes currently holding a live job. allowedCPUs selects the policy:
//
//   - 0: unlimited, admit while any CPU is free
//   - >=1: fixed cap on concurrent jobs
//   - in (0,1): cap the concurrent share of the pool
//   - <=-1: keep a fixed number of CPUs free
//   - in (-1,0): keep a fraction of the pool free
//
// The first job is always admitted when a CPU is free, so a pool too
// small for the configured reserve still makes progress. The fractional
// formulas are deliberately kept in their historical form; their
// rounding behavior at small pool sizes is part of the contract.
func Admit(total, ongoing, free int, allowedCPUs float64) bool {
	if free == 0 {
		return false
	}
	if ongoing == 0 {
		return true
	}

	switch {
	case allowedCPUs == 0:
		return true
	case allowedCPUs > 0 && allowedCPUs < 1:
		return float64(ongoing+1)/float64(total) <= allowedCPUs
	case allowedCPUs >= 1:
		return float64(ongoing) < allowedCPUs
	case allowedCPUs > -1:
		return float64(free-1)/float64(total) <= -allowedCPUs
	default:
		return float64(free) > -allowedCPUs
	}
}
