package generic

import (
	"math"
	"sync/atomic"
)

// =============================================================================
// SEQUENCE - Monotonic id assignment
// =============================================================================

// Sequence hands out strictly increasing ids starting after a seed value.
// Every call to Next consumes one id, even if the caller later discards it;
// ids are never reused.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first id is seed+1.
func NewSequence(seed int) *Sequence {
	s := &Sequence{}
	s.last.Store(int64(seed))
	return s
}

// Next returns the next id.
func (s *Sequence) Next() (int, error) {
	n := s.last.Add(1)
	if n > math.MaxInt32 {
		return 0, ErrSequenceExhausted
	}
	return int(n), nil
}

// Last returns the most recently issued id, or the seed if none was issued.
func (s *Sequence) Last() int {
	return int(s.last.Load())
}
