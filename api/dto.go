/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  Check-in and check-out travel as YYYY-MM-DD. Timestamps travel as RFC3339.

VALIDATION:
  Validation is done by the hotel package; DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/warp/hotel-engine/hotel"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// RoomDTO represents a room in API responses.
type RoomDTO struct {
	Number         int    `json:"number"`
	Type           string `json:"type"`
	PricePerNight  int    `json:"price_per_night"`
	CreatedAt      string `json:"created_at,omitempty"`
	LastModifiedAt string `json:"last_modified_at,omitempty"`
}

// UpsertRoomRequest creates or updates a room.
type UpsertRoomRequest struct {
	Type          string `json:"type"`
	PricePerNight *int   `json:"price_per_night"`
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID             int    `json:"id"`
	Balance        int    `json:"balance"`
	CreatedAt      string `json:"created_at,omitempty"`
	LastModifiedAt string `json:"last_modified_at,omitempty"`
}

// UpsertUserRequest creates or updates a user.
type UpsertUserRequest struct {
	Balance *int `json:"balance"`
}

// BookingDTO represents a booking in API responses.
type BookingDTO struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	RoomNumber     int    `json:"room_number"`
	RoomType       string `json:"room_type"`
	PricePerNight  int    `json:"price_per_night"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	NumberOfNights int    `json:"number_of_nights"`
	TotalCost      int    `json:"total_cost"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// BookRoomRequest is the body of POST /api/bookings.
type BookRoomRequest struct {
	UserID     int    `json:"user_id"`
	RoomNumber int    `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

// SummaryDTO aggregates the ledger.
type SummaryDTO struct {
	RoomCount          int            `json:"room_count"`
	UserCount          int            `json:"user_count"`
	BookingCount       int            `json:"booking_count"`
	TotalNights        int            `json:"total_nights"`
	TotalRevenue       int            `json:"total_revenue"`
	AverageNightlyRate string         `json:"average_nightly_rate"`
	RevenueByRoomType  map[string]int `json:"revenue_by_room_type"`
}

// ReportDTO is the full hotel report.
type ReportDTO struct {
	Rooms    []RoomDTO    `json:"rooms"`
	Bookings []BookingDTO `json:"bookings"`
	Users    []UserDTO    `json:"users"`
	Summary  SummaryDTO   `json:"summary"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toRoomDTO(r hotel.Room) RoomDTO {
	return RoomDTO{
		Number:         r.Number,
		Type:           string(r.Type),
		PricePerNight:  r.PricePerNight,
		CreatedAt:      formatTime(r.CreatedAt),
		LastModifiedAt: formatTime(r.LastModifiedAt),
	}
}

func toUserDTO(u hotel.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Balance:        u.Balance,
		CreatedAt:      formatTime(u.CreatedAt),
		LastModifiedAt: formatTime(u.LastModifiedAt),
	}
}

func toBookingDTO(b hotel.Booking) BookingDTO {
	return BookingDTO{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomNumber:     b.RoomNumber,
		RoomType:       string(b.RoomType),
		PricePerNight:  b.PricePerNight,
		CheckIn:        b.CheckIn.String(),
		CheckOut:       b.CheckOut.String(),
		NumberOfNights: b.NumberOfNights,
		TotalCost:      b.TotalCost,
		IdempotencyKey: b.IdempotencyKey,
		CreatedAt:      formatTime(b.CreatedAt),
	}
}

func toSummaryDTO(s hotel.Summary) SummaryDTO {
	byType := make(map[string]int, len(s.RevenueByRoomType))
	for t, v := range s.RevenueByRoomType {
		byType[string(t)] = v
	}
	return SummaryDTO{
		RoomCount:          s.RoomCount,
		UserCount:          s.UserCount,
		BookingCount:       s.BookingCount,
		TotalNights:        s.TotalNights,
		TotalRevenue:       s.TotalRevenue,
		AverageNightlyRate: s.AverageNightlyRate.StringFixed(2),
		RevenueByRoomType:  byType,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
