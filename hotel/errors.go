/*
errors.go - Rejection taxonomy for the reservation core

ERROR CATEGORIES:
  1. InvalidArgument     - malformed store mutation (non-positive id, negative amount)
  2. InvalidDate         - missing dates, check-in in the past, check-out not after check-in
  3. EntityNotFound      - referenced user or room does not exist
  4. InsufficientBalance - balance below the cost of the stay
  5. RoomNotAvailable    - requested stay overlaps an existing booking

Every structured error unwraps to its sentinel, so callers can use either
errors.Is(err, ErrRoomNotAvailable) or errors.As(err, &*RoomNotAvailableError).
None of them is fatal and none should be retried as-is.
*/
package hotel

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEntityNotFound      = errors.New("entity not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRoomNotAvailable    = errors.New("room not available")

	// ErrDuplicateIdempotencyKey is returned when an idempotency key is reused
	// for a different booking request.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrDuplicateBookingID is returned by a BookingStore asked to append an id
	// it already holds.
	ErrDuplicateBookingID = errors.New("duplicate booking id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidArgumentError describes a rejected store mutation.
type InvalidArgumentError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// InvalidDateError describes a rejected stay.
type InvalidDateError struct {
	CheckIn  generic.TimePoint
	CheckOut generic.TimePoint
	Reason   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %s (check-in: %s, check-out: %s)", e.Reason, e.CheckIn, e.CheckOut)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// EntityKind names what could not be found.
type EntityKind string

const (
	KindUser EntityKind = "User"
	KindRoom EntityKind = "Room"
)

// NotFoundError reports a missing user or room.
type NotFoundError struct {
	Kind EntityKind
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrEntityNotFound }

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	UserID    int
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// Shortfall is how much the user is missing.
func (e *InsufficientBalanceError) Shortfall() int { return e.Required - e.Available }

// RoomNotAvailableError reports a conflicting stay.
type RoomNotAvailableError struct {
	RoomNumber int
	CheckIn    generic.TimePoint
	CheckOut   generic.TimePoint
}

func (e *RoomNotAvailableError) Error() string {
	return fmt.Sprintf("room %d is not available from %s to %s", e.RoomNumber, e.CheckIn, e.CheckOut)
}

func (e *RoomNotAvailableError) Unwrap() error { return ErrRoomNotAvailable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidDate)
}

// IsNotFound returns true if the error indicates a missing user or room.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}

// IsConflict returns true if the request clashes with existing state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRoomNotAvailable) ||
		errors.Is(err, ErrDuplicateIdempotencyKey)
}

// Kind returns a short machine-readable name for a rejection, or "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrEntityNotFound):
		return "entity_not_found"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrRoomNotAvailable):
		return "room_not_available"
	case errors.Is(err, ErrDuplicateIdempotencyKey):
		return "duplicate_idempotency_key"
	default:
		return "internal"
	}
}
