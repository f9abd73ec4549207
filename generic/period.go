package generic

import "github.com/cockroachdb/errors"

// =============================================================================
// PERIOD - A stay, from check-in date to check-out date
// =============================================================================

// Period is a stay between two calendar dates. Start is the check-in date and
// End the check-out date. A valid stay covers at least one night (End > Start).
//
// Examples:
//   - One night:   2026-07-07 -> 2026-07-08
//   - A weekend:   2026-07-10 -> 2026-07-12
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod builds a period without validating it. Use Validate for that.
func NewPeriod(start, end TimePoint) Period {
	return Period{Start: start, End: end}
}

// Validate returns ErrInvalidPeriod when either bound is missing or the period
// does not cover at least one night.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return errors.Wrap(ErrInvalidPeriod, "missing check-in or check-out")
	}
	if !p.End.After(p.Start) {
		return errors.Wrapf(ErrInvalidPeriod, "stay %s", p)
	}
	return nil
}

// Nights returns the number of calendar days between check-in and check-out.
func (p Period) Nights() int {
	return DaysBetween(p.Start, p.End)
}

// Contains returns true if the date is a night of the stay: [Start, End).
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.Before(p.End)
}

// Nightly returns every night of the stay as a slice of TimePoints.
func (p Period) Nightly() []TimePoint {
	var nights []TimePoint
	for current := p.Start; current.Before(p.End); current = current.AddDays(1) {
		nights = append(nights, current)
	}
	return nights
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// OVERLAP POLICY - When do two stays conflict
// =============================================================================

// OverlapPolicy decides whether two stays on the same room collide.
type OverlapPolicy string

const (
	// OverlapInclusive treats the check-out date as occupied. A stay ending on
	// the day another begins conflicts with it.
	OverlapInclusive OverlapPolicy = "inclusive"

	// OverlapHalfOpen treats stays as [check-in, check-out). Back-to-back stays
	// (checkout morning, check-in afternoon) are allowed.
	OverlapHalfOpen OverlapPolicy = "half_open"
)

// ParseOverlapPolicy maps a config string to a policy.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch OverlapPolicy(s) {
	case OverlapInclusive, OverlapHalfOpen:
		return OverlapPolicy(s), nil
	default:
		return "", errors.Newf("unknown overlap policy %q", s)
	}
}

// Overlaps reports whether p and other collide under policy. An unknown or
// empty policy behaves as OverlapInclusive.
func (p Period) Overlaps(other Period, policy OverlapPolicy) bool {
	if policy == OverlapHalfOpen {
		return p.Start.Before(other.End) && other.Start.Before(p.End)
	}
	return !p.End.Before(other.Start) && !other.End.Before(p.Start)
}
