package hotel_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/generic"
	"github.com/warp/hotel-engine/hotel"
	"github.com/warp/hotel-engine/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// now is the pinned "today" of every test: 2026-07-01 10:00 UTC.
var now = time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

// d is July 7th 2026, six days after "today".
var d = date(2026, time.July, 7)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(extra ...hotel.Option) []hotel.Option {
	opts := []hotel.Option{
		hotel.WithLogger(quietLogger()),
		hotel.WithClock(generic.FixedClock{At: now}),
	}
	return append(opts, extra...)
}

func newTestService(t *testing.T, extra ...hotel.Option) *hotel.ReservationService {
	t.Helper()
	opts := testOptions(extra...)
	ledger, err := hotel.NewBookingLedger(context.Background(), memory.NewMemory(), opts...)
	require.NoError(t, err)
	return hotel.NewReservationService(hotel.NewRoomStore(opts...), hotel.NewUserStore(opts...), ledger, opts...)
}

func mustRoom(t *testing.T, s *hotel.ReservationService, number int, roomType hotel.RoomType, price int) {
	t.Helper()
	_, err := s.Rooms.Upsert(number, roomType, price)
	require.NoError(t, err)
}

func mustUser(t *testing.T, s *hotel.ReservationService, id, balance int) {
	t.Helper()
	_, err := s.Users.Upsert(id, balance)
	require.NoError(t, err)
}

func balanceOf(t *testing.T, s *hotel.ReservationService, id int) int {
	t.Helper()
	u, ok := s.Users.FindByID(id)
	require.True(t, ok, "user %d should exist", id)
	return u.Balance
}

func bookingsOf(t *testing.T, s *hotel.ReservationService) []hotel.Booking {
	t.Helper()
	bookings, err := s.Ledger.List(context.Background())
	require.NoError(t, err)
	return bookings
}

func request(userID, room int, in, out generic.TimePoint) hotel.BookingRequest {
	return hotel.BookingRequest{UserID: userID, RoomNumber: room, CheckIn: in, CheckOut: out}
}
