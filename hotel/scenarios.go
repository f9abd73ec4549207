package hotel

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// SCENARIOS - Seed data for demos
// =============================================================================

// Scenario seeds the stores with a known fleet, guests and bookings.
type Scenario struct {
	ID          string
	Name        string
	Description string

	load func(ctx context.Context, s *ReservationService, first generic.TimePoint) error
}

// Scenarios lists the available scenarios.
var Scenarios = []Scenario{
	{
		ID:          "demo-run",
		Name:        "Demo Run",
		Description: "Three rooms, two guests, one night booked in rooms 1 and 2",
		load:        loadDemo,
	},
	{
		ID:          "fleet-only",
		Name:        "Fleet Only",
		Description: "Three rooms and two guests, nothing booked",
		load:        loadFleet,
	},
	{
		ID:          "price-change",
		Name:        "Price Change",
		Description: "Room 1 booked at 1000, then repriced to 1500; the booking keeps 1000",
		load:        loadPriceChange,
	},
}

// FindScenario returns the scenario with id.
func FindScenario(id string) (Scenario, bool) {
	for _, sc := range Scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Load wipes rooms, users and bookings, then seeds the scenario.
func (sc Scenario) Load(ctx context.Context, s *ReservationService) error {
	s.Rooms.Reset()
	s.Users.Reset()
	if err := s.Ledger.Reset(ctx); err != nil {
		return err
	}
	if err := sc.load(ctx, s, DemoCheckIn(s.clock)); err != nil {
		return errors.Wrapf(err, "scenario %s", sc.ID)
	}
	return nil
}

// DemoCheckIn is July 7th of this year, or of next year once that date has
// passed.
func DemoCheckIn(clock generic.Clock) generic.TimePoint {
	today := generic.Today(clock)
	day := generic.NewTimePoint(today.Year(), time.July, 7)
	if day.Before(today) {
		day = generic.NewTimePoint(today.Year()+1, time.July, 7)
	}
	return day
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func loadFleet(_ context.Context, s *ReservationService, _ generic.TimePoint) error {
	rooms := []struct {
		number int
		kind   RoomType
		price  int
	}{
		{1, RoomStandard, 1000},
		{2, RoomJunior, 2000},
		{3, RoomSuite, 3000},
	}
	for _, r := range rooms {
		if _, err := s.Rooms.Upsert(r.number, r.kind, r.price); err != nil {
			return err
		}
	}
	if _, err := s.Users.Upsert(1, 5000); err != nil {
		return err
	}
	if _, err := s.Users.Upsert(2, 10000); err != nil {
		return err
	}
	return nil
}

func loadDemo(ctx context.Context, s *ReservationService, first generic.TimePoint) error {
	if err := loadFleet(ctx, s, first); err != nil {
		return err
	}
	requests := []BookingRequest{
		{UserID: 1, RoomNumber: 1, CheckIn: first, CheckOut: first.AddDays(1)},
		{UserID: 2, RoomNumber: 2, CheckIn: first, CheckOut: first.AddDays(1)},
	}
	for _, req := range requests {
		if _, err := s.BookRoom(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func loadPriceChange(ctx context.Context, s *ReservationService, first generic.TimePoint) error {
	if err := loadFleet(ctx, s, first); err != nil {
		return err
	}
	req := BookingRequest{UserID: 1, RoomNumber: 1, CheckIn: first, CheckOut: first.AddDays(2)}
	if _, err := s.BookRoom(ctx, req); err != nil {
		return err
	}
	_, err := s.Rooms.Upsert(1, RoomStandard, 1500)
	return err
}
