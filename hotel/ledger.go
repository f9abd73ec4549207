/*
ledger.go - Append-only booking ledger

PURPOSE:
  The ledger is the only owner of booking records. It assigns ids, stamps
  creation times, answers availability queries and does the cost math.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: bookings are never updated or deleted
  2. IDS: strictly increasing from 1, never reused, safe under concurrency
  3. SNAPSHOT: a booking carries its own copy of room type and price

AVAILABILITY:
  CreateBooking does not check availability. The reservation service checks
  it first, under a per-room lock, and only then appends.

SEE ALSO:
  - store/memory: default BookingStore
  - store/sqlite: SQLite BookingStore
  - reservation.go: the only writer in normal operation
*/
package hotel

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// BOOKING STORE - Persistence port for the ledger
// =============================================================================

// BookingStore persists bookings. It is append-only: there is no Update and
// no Delete besides Reset, which wipes everything (demo scenarios only).
type BookingStore interface {
	// Append persists a booking. Fails with ErrDuplicateBookingID if the id
	// is already present.
	Append(ctx context.Context, b Booking) error

	// List returns every booking in insertion order.
	List(ctx context.Context) ([]Booking, error)

	// ListByRoom returns the bookings of one room in insertion order.
	ListByRoom(ctx context.Context, roomNumber int) ([]Booking, error)

	// FindByIdempotencyKey returns the booking made with key, or nil.
	FindByIdempotencyKey(ctx context.Context, key string) (*Booking, error)

	// MaxID returns the highest booking id held, or 0 when empty.
	MaxID(ctx context.Context) (int, error)

	// Reset removes every booking.
	Reset(ctx context.Context) error
}

// =============================================================================
// BOOKING LEDGER
// =============================================================================

type BookingLedger struct {
	store   BookingStore
	seq     *generic.Sequence
	overlap generic.OverlapPolicy

	log   *slog.Logger
	clock generic.Clock
}

// NewBookingLedger wraps store. The id sequence resumes after the highest id
// the store already holds, so a pre-filled store never sees an id twice.
func NewBookingLedger(ctx context.Context, store BookingStore, opts ...Option) (*BookingLedger, error) {
	o := buildOptions(opts)
	maxID, err := store.MaxID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read highest booking id")
	}
	return &BookingLedger{
		store:   store,
		seq:     generic.NewSequence(maxID),
		overlap: o.overlap,
		log:     o.logger.With("component", "booking_ledger"),
		clock:   o.clock,
	}, nil
}

// OverlapPolicy returns the policy used by availability queries.
func (l *BookingLedger) OverlapPolicy() generic.OverlapPolicy { return l.overlap }

// NextID consumes and returns the next booking id.
func (l *BookingLedger) NextID() (int, error) {
	return l.seq.Next()
}

// IsRoomAvailable reports whether no booking of roomNumber overlaps the stay
// from checkIn to checkOut under the ledger's overlap policy.
func (l *BookingLedger) IsRoomAvailable(ctx context.Context, roomNumber int, checkIn, checkOut generic.TimePoint) (bool, error) {
	conflicts, err := l.Conflicts(ctx, roomNumber, generic.NewPeriod(checkIn, checkOut))
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Conflicts returns the bookings of roomNumber that overlap stay.
func (l *BookingLedger) Conflicts(ctx context.Context, roomNumber int, stay generic.Period) ([]Booking, error) {
	bookings, err := l.store.ListByRoom(ctx, roomNumber)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load bookings of room %d", roomNumber)
	}
	var conflicts []Booking
	for _, b := range bookings {
		if b.Stay().Overlaps(stay, l.overlap) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// CreateBooking assigns an id and a creation time to draft and appends it.
// It does not check availability.
func (l *BookingLedger) CreateBooking(ctx context.Context, draft BookingDraft) (Booking, error) {
	id, err := l.NextID()
	if err != nil {
		return Booking{}, err
	}

	booking := Booking{
		ID:             id,
		UserID:         draft.UserID,
		RoomNumber:     draft.RoomNumber,
		RoomType:       draft.RoomType,
		PricePerNight:  draft.PricePerNight,
		CheckIn:        draft.CheckIn,
		CheckOut:       draft.CheckOut,
		NumberOfNights: draft.NumberOfNights,
		TotalCost:      draft.TotalCost,
		IdempotencyKey: draft.IdempotencyKey,
		CreatedAt:      l.clock.Now(),
	}

	if err := l.store.Append(ctx, booking); err != nil {
		return Booking{}, errors.Wrapf(err, "failed to append booking %d", id)
	}

	l.log.Info("booking created",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"room", booking.RoomNumber,
		"nights", booking.NumberOfNights,
		"total", booking.TotalCost,
	)
	return booking, nil
}

// FindByIdempotencyKey returns the booking recorded under key, or nil.
func (l *BookingLedger) FindByIdempotencyKey(ctx context.Context, key string) (*Booking, error) {
	if key == "" {
		return nil, nil
	}
	return l.store.FindByIdempotencyKey(ctx, key)
}

// List returns every booking, newest first. Bookings without a creation time
// come last.
func (l *BookingLedger) List(ctx context.Context) ([]Booking, error) {
	bookings, err := l.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings")
	}
	SortBookingsNewestFirst(bookings)
	return bookings, nil
}

// Reset removes every booking. The id sequence is not rewound.
func (l *BookingLedger) Reset(ctx context.Context) error {
	return l.store.Reset(ctx)
}

// =============================================================================
// COST MATH
// =============================================================================

// CalculateNumberOfNights returns the calendar days between the two dates.
func (l *BookingLedger) CalculateNumberOfNights(checkIn, checkOut generic.TimePoint) int {
	return generic.DaysBetween(checkIn, checkOut)
}

// CalculateTotalCost returns pricePerNight * nights, or an
// *InvalidArgumentError when the product does not fit in an int.
func (l *BookingLedger) CalculateTotalCost(pricePerNight, nights int) (int, error) {
	if pricePerNight < 0 || nights < 0 {
		return 0, &InvalidArgumentError{Field: "total cost", Value: pricePerNight, Reason: "price and nights cannot be negative"}
	}
	if nights != 0 && pricePerNight > math.MaxInt/nights {
		return 0, &InvalidArgumentError{
			Field:  "total cost",
			Value:  pricePerNight,
			Reason: fmt.Sprintf("price per night times %d nights overflows", nights),
		}
	}
	return pricePerNight * nights, nil
}

// SortBookingsNewestFirst orders by creation time descending, zero times
// last, ties broken by id descending.
func SortBookingsNewestFirst(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return newerFirst(bookings[i].CreatedAt, bookings[j].CreatedAt, bookings[i].ID, bookings[j].ID)
	})
}
