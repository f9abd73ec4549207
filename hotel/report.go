package hotel

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REPORT - Read-only views, newest first
// =============================================================================

// Report is a consistent-enough picture of the hotel for display. Each list
// is sorted by creation time, newest first, records without a creation time
// last.
type Report struct {
	Rooms    []Room
	Bookings []Booking
	Users    []User
	Summary  Summary
}

// Summary aggregates the ledger.
type Summary struct {
	RoomCount    int
	UserCount    int
	BookingCount int
	TotalNights  int
	TotalRevenue int

	// AverageNightlyRate is TotalRevenue / TotalNights, rounded to two
	// places. Zero when nothing is booked.
	AverageNightlyRate decimal.Decimal

	// RevenueByRoomType is each type's share of the revenue, snapshot
	// type at booking time.
	RevenueByRoomType map[RoomType]int
}

// Reporter builds reports from the three stores.
type Reporter struct {
	rooms  *RoomStore
	users  *UserStore
	ledger *BookingLedger
	log    *slog.Logger
}

func NewReporter(rooms *RoomStore, users *UserStore, ledger *BookingLedger, opts ...Option) *Reporter {
	o := buildOptions(opts)
	return &Reporter{
		rooms:  rooms,
		users:  users,
		ledger: ledger,
		log:    o.logger.With("component", "reporter"),
	}
}

// Rooms returns every room, newest first.
func (r *Reporter) Rooms() []Room {
	rooms := r.rooms.List()
	sort.SliceStable(rooms, func(i, j int) bool {
		return newerFirst(rooms[i].CreatedAt, rooms[j].CreatedAt, rooms[i].Number, rooms[j].Number)
	})
	return rooms
}

// Users returns every user, newest first.
func (r *Reporter) Users() []User {
	users := r.users.List()
	sort.SliceStable(users, func(i, j int) bool {
		return newerFirst(users[i].CreatedAt, users[j].CreatedAt, users[i].ID, users[j].ID)
	})
	return users
}

// Bookings returns every booking, newest first.
func (r *Reporter) Bookings(ctx context.Context) ([]Booking, error) {
	return r.ledger.List(ctx)
}

// Build assembles the full report.
func (r *Reporter) Build(ctx context.Context) (Report, error) {
	r.log.Debug("building report")

	bookings, err := r.Bookings(ctx)
	if err != nil {
		return Report{}, err
	}
	rooms := r.Rooms()
	users := r.Users()

	return Report{
		Rooms:    rooms,
		Bookings: bookings,
		Users:    users,
		Summary:  Summarize(len(rooms), len(users), bookings),
	}, nil
}

// Summarize aggregates bookings.
func Summarize(roomCount, userCount int, bookings []Booking) Summary {
	s := Summary{
		RoomCount:          roomCount,
		UserCount:          userCount,
		BookingCount:       len(bookings),
		AverageNightlyRate: decimal.Zero,
		RevenueByRoomType:  make(map[RoomType]int),
	}
	for _, b := range bookings {
		s.TotalNights += b.NumberOfNights
		s.TotalRevenue += b.TotalCost
		s.RevenueByRoomType[b.RoomType] += b.TotalCost
	}
	if s.TotalNights > 0 {
		s.AverageNightlyRate = decimal.NewFromInt(int64(s.TotalRevenue)).
			DivRound(decimal.NewFromInt(int64(s.TotalNights)), 2)
	}
	return s
}

// newerFirst orders by time descending, zero times last, then by key
// descending.
func newerFirst(a, b time.Time, ka, kb int) bool {
	if a.IsZero() != b.IsZero() {
		return !a.IsZero()
	}
	if !a.Equal(b) {
		return a.After(b)
	}
	return ka > kb
}
