/*
Package hotel implements the reservation core: rooms, users, the booking
ledger and the service that books a room for a user.

KEY CONCEPTS:
  - Room:    a numbered room with a type and a flat price per night
  - User:    a guest account holding a balance
  - Booking: an immutable record of a paid stay, carrying a snapshot of the
             room's type and price at the time it was made

FLOW:
  ReservationService.BookRoom validates the stay, resolves the user and the
  room, prices the stay, checks the balance, checks availability and finally
  records the booking and charges the user as one step.

OWNERSHIP:
  RoomStore, UserStore and BookingLedger each own their records. The service
  owns nothing; it coordinates the three per call.

SEE ALSO:
  - reservation.go: the booking pipeline
  - ledger.go: id assignment, overlap queries, cost math
  - errors.go: the rejection taxonomy
*/
package hotel

import (
	"time"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// ROOM
// =============================================================================

// RoomType is the category of a room.
type RoomType string

const (
	RoomStandard RoomType = "STANDARD"
	RoomJunior   RoomType = "JUNIOR"
	RoomSuite    RoomType = "SUITE"
)

// RoomTypes lists every known room type.
var RoomTypes = []RoomType{RoomStandard, RoomJunior, RoomSuite}

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	for _, known := range RoomTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Room is a bookable room. Number is its identifier.
type Room struct {
	Number        int
	Type          RoomType
	PricePerNight int

	CreatedAt      time.Time
	LastModifiedAt time.Time // zero until the first update
}

// =============================================================================
// USER
// =============================================================================

// User is a guest. Balance is never negative.
type User struct {
	ID      int
	Balance int

	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// =============================================================================
// BOOKING
// =============================================================================

// Booking is a confirmed stay. RoomType and PricePerNight are copied from the
// room when the booking is made; later edits to the room do not reach them.
type Booking struct {
	ID         int
	UserID     int
	RoomNumber int

	RoomType      RoomType
	PricePerNight int

	CheckIn        generic.TimePoint
	CheckOut       generic.TimePoint
	NumberOfNights int
	TotalCost      int

	IdempotencyKey string
	CreatedAt      time.Time
}

// Stay returns the booked period.
func (b Booking) Stay() generic.Period {
	return generic.NewPeriod(b.CheckIn, b.CheckOut)
}

// BookingDraft is what the service hands to the ledger: everything about a
// booking except its id and creation time, which the ledger assigns.
type BookingDraft struct {
	UserID         int
	RoomNumber     int
	RoomType       RoomType
	PricePerNight  int
	CheckIn        generic.TimePoint
	CheckOut       generic.TimePoint
	NumberOfNights int
	TotalCost      int
	IdempotencyKey string
}

// BookingRequest asks to book RoomNumber for UserID from CheckIn to CheckOut.
// IdempotencyKey is optional; when set, retries of the same request return
// the booking made by the first attempt instead of charging twice.
type BookingRequest struct {
	UserID         int
	RoomNumber     int
	CheckIn        generic.TimePoint
	CheckOut       generic.TimePoint
	IdempotencyKey string
}

// Stay returns the requested period.
func (r BookingRequest) Stay() generic.Period {
	return generic.NewPeriod(r.CheckIn, r.CheckOut)
}

// matches reports whether b was made from the same request parameters.
func (r BookingRequest) matches(b Booking) bool {
	return b.UserID == r.UserID &&
		b.RoomNumber == r.RoomNumber &&
		b.CheckIn.Equal(r.CheckIn) &&
		b.CheckOut.Equal(r.CheckOut)
}
