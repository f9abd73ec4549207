package generic

import "github.com/cockroachdb/errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a stay is malformed: a missing bound,
	// or a check-out that is not after the check-in.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrSequenceExhausted is returned when an id sequence would overflow.
	ErrSequenceExhausted = errors.New("sequence exhausted")
)
