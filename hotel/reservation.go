/*
reservation.go - Booking pipeline

REQUEST FLOW:
  1. dates     check-in present, not in the past, check-out after check-in
  2. user      must exist
  3. room      must exist
     -- lock room + user --
  4. cost      nights * room price (a cost that overflows is rejected)
  5. funds     balance >= cost
  6. slot      no overlapping booking on the room
  7. commit    append booking, then deduct the cost

  Every step can reject the request; a rejection leaves every store as it
  was. The order is fixed: the balance is checked before availability, and
  the booking is appended before the balance is deducted.

ATOMICITY:
  Steps 4-7 run under a per-room and per-user lock, so two requests for the
  same room cannot both pass the availability check. The commit runs inside
  UserStore.Charge: the booking is appended and the user charged under the
  user's record lock, after a final balance check. A booking is never
  recorded without its charge.

IDEMPOTENCY:
  A request carrying an IdempotencyKey that was already used for the same
  parameters returns the original booking and charges nothing. The same key
  with other parameters is rejected with ErrDuplicateIdempotencyKey.
*/
package hotel

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// RESERVATION SERVICE
// =============================================================================

type ReservationService struct {
	Rooms  *RoomStore
	Users  *UserStore
	Ledger *BookingLedger

	locks *generic.KeyedMutex
	log   *slog.Logger
	clock generic.Clock
}

func NewReservationService(rooms *RoomStore, users *UserStore, ledger *BookingLedger, opts ...Option) *ReservationService {
	o := buildOptions(opts)
	return &ReservationService{
		Rooms:  rooms,
		Users:  users,
		Ledger: ledger,
		locks:  generic.NewKeyedMutex(),
		log:    o.logger.With("component", "reservation_service"),
		clock:  o.clock,
	}
}

// BookRoom books a room for a user, or rejects the request with one of
// *InvalidDateError, *NotFoundError, *InvalidArgumentError (a cost too large
// to represent), *InsufficientBalanceError or *RoomNotAvailableError.
func (s *ReservationService) BookRoom(ctx context.Context, req BookingRequest) (Booking, error) {
	booking, replayed, err := s.bookRoom(ctx, req)
	if err != nil {
		s.log.Warn("booking rejected",
			"user_id", req.UserID,
			"room", req.RoomNumber,
			"check_in", req.CheckIn.String(),
			"check_out", req.CheckOut.String(),
			"reason", Kind(err),
			"error", err,
		)
		return Booking{}, err
	}
	if replayed {
		s.log.Info("booking replayed", "booking_id", booking.ID, "idempotency_key", req.IdempotencyKey)
		return booking, nil
	}
	s.log.Info("booking completed",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"room", booking.RoomNumber,
		"total", booking.TotalCost,
	)
	return booking, nil
}

func (s *ReservationService) bookRoom(ctx context.Context, req BookingRequest) (Booking, bool, error) {
	// A retry of a request that already went through is answered first, even
	// if its check-in date has passed since.
	if existing, err := s.replay(ctx, req); err != nil || existing != nil {
		return deref(existing), existing != nil, err
	}

	// 1. Dates
	if err := s.ValidateDates(req.CheckIn, req.CheckOut); err != nil {
		return Booking{}, false, err
	}

	// 2. User
	user, ok := s.Users.FindByID(req.UserID)
	if !ok {
		return Booking{}, false, &NotFoundError{Kind: KindUser, ID: req.UserID}
	}

	// 3. Room
	room, ok := s.Rooms.FindByNumber(req.RoomNumber)
	if !ok {
		return Booking{}, false, &NotFoundError{Kind: KindRoom, ID: req.RoomNumber}
	}

	unlock := s.locks.Lock(s.lockKeys(req)...)
	defer unlock()

	if existing, err := s.replay(ctx, req); err != nil || existing != nil {
		return deref(existing), existing != nil, err
	}

	// 4. Cost
	nights := s.Ledger.CalculateNumberOfNights(req.CheckIn, req.CheckOut)
	cost, err := s.Ledger.CalculateTotalCost(room.PricePerNight, nights)
	if err != nil {
		return Booking{}, false, err
	}

	// 5. Funds
	if !s.Users.HasSufficientBalance(req.UserID, cost) {
		available := user.Balance
		if current, ok := s.Users.FindByID(req.UserID); ok {
			available = current.Balance
		}
		return Booking{}, false, &InsufficientBalanceError{UserID: req.UserID, Required: cost, Available: available}
	}

	// 6. Slot
	available, err := s.Ledger.IsRoomAvailable(ctx, req.RoomNumber, req.CheckIn, req.CheckOut)
	if err != nil {
		return Booking{}, false, err
	}
	if !available {
		return Booking{}, false, &RoomNotAvailableError{RoomNumber: req.RoomNumber, CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	}

	// 7. Commit: append, then deduct, under the user's record lock.
	draft := BookingDraft{
		UserID:         req.UserID,
		RoomNumber:     req.RoomNumber,
		RoomType:       room.Type,
		PricePerNight:  room.PricePerNight,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		NumberOfNights: nights,
		TotalCost:      cost,
		IdempotencyKey: req.IdempotencyKey,
	}
	var booking Booking
	_, err = s.Users.Charge(req.UserID, cost, func() error {
		var err error
		booking, err = s.Ledger.CreateBooking(ctx, draft)
		return err
	})
	if err != nil {
		return Booking{}, false, err
	}
	return booking, false, nil
}

// ValidateDates rejects a missing date, a check-in before today and a
// check-out that is not strictly after the check-in.
func (s *ReservationService) ValidateDates(checkIn, checkOut generic.TimePoint) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return &InvalidDateError{CheckIn: checkIn, CheckOut: checkOut, Reason: "check-in and check-out dates are required"}
	}
	if checkIn.Before(generic.Today(s.clock)) {
		return &InvalidDateError{CheckIn: checkIn, CheckOut: checkOut, Reason: "check-in cannot be in the past"}
	}
	if err := generic.NewPeriod(checkIn, checkOut).Validate(); err != nil {
		return &InvalidDateError{CheckIn: checkIn, CheckOut: checkOut, Reason: "check-out must be after check-in"}
	}
	return nil
}

// replay returns the booking already made under req's idempotency key, nil
// if there is none, or ErrDuplicateIdempotencyKey if the key was used for a
// different request.
func (s *ReservationService) replay(ctx context.Context, req BookingRequest) (*Booking, error) {
	if req.IdempotencyKey == "" {
		return nil, nil
	}
	existing, err := s.Ledger.FindByIdempotencyKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up idempotency key")
	}
	if existing == nil {
		return nil, nil
	}
	if !req.matches(*existing) {
		return nil, errors.Wrapf(ErrDuplicateIdempotencyKey, "key %s belongs to booking %d", req.IdempotencyKey, existing.ID)
	}
	return existing, nil
}

func (s *ReservationService) lockKeys(req BookingRequest) []string {
	keys := []string{
		"room:" + strconv.Itoa(req.RoomNumber),
		"user:" + strconv.Itoa(req.UserID),
	}
	if req.IdempotencyKey != "" {
		keys = append(keys, "idem:"+req.IdempotencyKey)
	}
	return keys
}

func deref(b *Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return *b
}
