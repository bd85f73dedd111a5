package engine_test

import (
	"testing"

	"craftwarden/core/engine"

	"github.com/stretchr/testify/assert"
)

func TestAdmit(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		ongoing     int
		free        int
		allowedCPUs float64
		want        bool
	}{
		{"NoFreeCPU", 5, 0, 0, 0, false},
		{"NoFreeCPUOverridesUnlimited", 5, 3, 0, 0, false},
		{"FirstJobAlwaysAdmitted", 5, 0, 1, -4, true},
		{"UnlimitedWithFree", 5, 3, 2, 0, true},

		// Fixed concurrent cap.
		{"FixedCapBelow", 5, 1, 3, 2, true},
		{"FixedCapReached", 5, 2, 3, 2, false},
		{"FixedCapReachedAnyFree", 5, 2, 1, 2, false},

		// Fractional concurrent share.
		{"FractionAdmits", 10, 1, 8, 0.5, true},  // (1+1)/10 <= 0.5
		{"FractionAtBoundary", 4, 1, 3, 0.5, true}, // 2/4 <= 0.5
		{"FractionExceeded", 4, 2, 2, 0.5, false},  // 3/4 > 0.5
		{"FractionSmallPool", 2, 1, 1, 0.5, false}, // 2/2 > 0.5

		// Reserve a fixed number of CPUs.
		{"ReserveCountHeld", 5, 1, 2, -2, false}, // free 2 not > 2
		{"ReserveCountClear", 5, 1, 3, -2, true}, // free 3 > 2

		// Reserve a fraction of the pool. Formula kept verbatim:
		// (free-1)/total <= -allowedCPUs admits.
		{"ReserveFractionWithin", 10, 2, 3, -0.5, true},  // 2/10 <= 0.5
		{"ReserveFractionBoundary", 10, 2, 6, -0.5, true}, // 5/10 <= 0.5
		{"ReserveFractionOver", 10, 2, 8, -0.5, false},    // 7/10 > 0.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Admit(tt.total, tt.ongoing, tt.free, tt.allowedCPUs)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Unlimited policy admits whenever a CPU is free, regardless of load.
func TestAdmit_UnlimitedWheneverFree(t *testing.T) {
	for free := 1; free <= 8; free++ {
		for ongoing := 0; ongoing <= 8; ongoing++ {
			assert.True(t, engine.Admit(8, ongoing, free, 0),
				"free=%d ongoing=%d", free, ongoing)
		}
	}
}
