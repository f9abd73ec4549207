package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func july(day int) generic.TimePoint {
	return generic.NewTimePoint(2026, time.July, day)
}

func stay(in, out int) generic.Period {
	return generic.NewPeriod(july(in), july(out))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestPeriod_Validate(t *testing.T) {
	tests := []struct {
		name    string
		period  generic.Period
		wantErr bool
	}{
		{"one night", stay(7, 8), false},
		{"week", stay(1, 8), false},
		{"same day", stay(7, 7), true},
		{"reversed", stay(8, 7), true},
		{"missing check-in", generic.NewPeriod(generic.TimePoint{}, july(8)), true},
		{"missing check-out", generic.NewPeriod(july(7), generic.TimePoint{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPeriod_Nights(t *testing.T) {
	assert.Equal(t, 1, stay(7, 8).Nights())
	assert.Equal(t, 7, stay(1, 8).Nights())

	// Across a month boundary
	p := generic.NewPeriod(july(30), generic.NewTimePoint(2026, time.August, 2))
	assert.Equal(t, 3, p.Nights())
	assert.Len(t, p.Nightly(), 3)
}

func TestPeriod_Contains_ExcludesCheckOut(t *testing.T) {
	p := stay(7, 9)
	assert.True(t, p.Contains(july(7)))
	assert.True(t, p.Contains(july(8)))
	assert.False(t, p.Contains(july(9)), "check-out morning is not a night of the stay")
	assert.False(t, p.Contains(july(6)))
}

// =============================================================================
// OVERLAP POLICIES
// =============================================================================

func TestPeriod_Overlaps(t *testing.T) {
	existing := stay(10, 15)

	tests := []struct {
		name      string
		requested generic.Period
		inclusive bool
		halfOpen  bool
	}{
		{"exact match", stay(10, 15), true, true},
		{"fully contained", stay(11, 13), true, true},
		{"fully containing", stay(8, 20), true, true},
		{"partial start", stay(8, 11), true, true},
		{"partial end", stay(14, 18), true, true},
		{"ends on existing check-in", stay(8, 10), true, false},
		{"starts on existing check-out", stay(15, 17), true, false},
		{"well before", stay(1, 5), false, false},
		{"well after", stay(20, 22), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inclusive, existing.Overlaps(tt.requested, generic.OverlapInclusive), "inclusive")
			assert.Equal(t, tt.halfOpen, existing.Overlaps(tt.requested, generic.OverlapHalfOpen), "half-open")

			// Overlap is symmetric
			assert.Equal(t, tt.inclusive, tt.requested.Overlaps(existing, generic.OverlapInclusive))
			assert.Equal(t, tt.halfOpen, tt.requested.Overlaps(existing, generic.OverlapHalfOpen))
		})
	}
}

func TestPeriod_Overlaps_EmptyPolicyIsInclusive(t *testing.T) {
	assert.True(t, stay(8, 10).Overlaps(stay(10, 12), ""))
}

func TestParseOverlapPolicy(t *testing.T) {
	p, err := generic.ParseOverlapPolicy("half_open")
	require.NoError(t, err)
	assert.Equal(t, generic.OverlapHalfOpen, p)

	p, err = generic.ParseOverlapPolicy("inclusive")
	require.NoError(t, err)
	assert.Equal(t, generic.OverlapInclusive, p)

	_, err = generic.ParseOverlapPolicy("fuzzy")
	assert.Error(t, err)
}
