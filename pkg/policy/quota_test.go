package policy

import (
	"testing"

	"teletherapy-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name          string
		perPeriod     int
		used          int
		wantRemaining int
		wantUnlimited bool
	}{
		{"unused allotment", 4, 0, 4, false},
		{"partially used", 4, 2, 2, false},
		{"fully used", 4, 4, 0, false},
		{"over quota clamps at zero", 4, 5, 0, false},
		{"zero allotment means unlimited", 0, 10, entity.UnlimitedSessions, true},
		{"negative sentinel means unlimited", -1, 99, entity.UnlimitedSessions, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Remaining(tt.perPeriod, tt.used)
			assert.Equal(t, tt.wantRemaining, q.Remaining)
			assert.Equal(t, tt.wantUnlimited, q.Unlimited)
			assert.Equal(t, tt.used, q.Used)
		})
	}
}

// Remaining is monotonically non-increasing in usedCount and never negative
// for a bounded allotment.
func TestRemainingMonotonic(t *testing.T) {
	const total = 6
	prev := Remaining(total, 0).Remaining
	for used := 1; used <= 20; used++ {
		cur := Remaining(total, used).Remaining
		assert.LessOrEqual(t, cur, prev, "used=%d", used)
		assert.GreaterOrEqual(t, cur, 0, "used=%d", used)
		prev = cur
	}
}
