/*
handlers.go - HTTP API handlers for the reservation core

ENDPOINTS:
  Rooms:
    GET    /api/rooms                  List rooms, newest first
    GET    /api/rooms/{number}         Get one room
    PUT    /api/rooms/{number}         Create or update a room

  Users:
    GET    /api/users                  List users, newest first
    GET    /api/users/{id}             Get one user
    PUT    /api/users/{id}             Create or update a user

  Bookings:
    GET    /api/bookings               List bookings, newest first
    POST   /api/bookings               Book a room (optional Idempotency-Key header)

  Reporting:
    GET    /api/report                 Rooms, bookings, users and a summary

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Reset and load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, invalid argument, invalid dates
  - 404: User or room not found
  - 409: Room not available, idempotency key reused
  - 422: Insufficient balance
  - 500: Internal errors

SECURITY NOTE:
  No authentication. All endpoints are public.
*/
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/hotel-engine/generic"
	"github.com/warp/hotel-engine/hotel"
)

// IdempotencyKeyHeader carries an optional UUID making POST /api/bookings
// safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service  *hotel.ReservationService
	Reporter *hotel.Reporter

	log *slog.Logger

	// scenarioMu serializes scenario loads; they wipe every store.
	scenarioMu      sync.Mutex
	currentScenario string
}

// NewHandler creates a handler over the reservation service.
func NewHandler(svc *hotel.ReservationService, reporter *hotel.Reporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Service:  svc,
		Reporter: reporter,
		log:      logger.With("component", "api"),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// ROOM HANDLERS
// =============================================================================

// ListRooms returns all rooms, newest first.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.Reporter.Rooms()
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRoom returns a single room.
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	number, ok := intParam(w, r, "number")
	if !ok {
		return
	}
	room, found := h.Service.Rooms.FindByNumber(number)
	if !found {
		h.writeDomainError(w, &hotel.NotFoundError{Kind: hotel.KindRoom, ID: number})
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// UpsertRoom creates or updates a room.
// PUT /api/rooms/{number}
func (h *Handler) UpsertRoom(w http.ResponseWriter, r *http.Request) {
	number, ok := intParam(w, r, "number")
	if !ok {
		return
	}
	var req UpsertRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.PricePerNight == nil {
		writeError(w, http.StatusBadRequest, "price_per_night is required", nil)
		return
	}

	room, err := h.Service.Rooms.Upsert(number, hotel.RoomType(req.Type), *req.PricePerNight)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users, newest first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.Reporter.Users()
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	user, found := h.Service.Users.FindByID(id)
	if !found {
		h.writeDomainError(w, &hotel.NotFoundError{Kind: hotel.KindUser, ID: id})
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// UpsertUser creates or updates a user.
// PUT /api/users/{id}
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req UpsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Balance == nil {
		writeError(w, http.StatusBadRequest, "balance is required", nil)
		return
	}

	user, err := h.Service.Users.Upsert(id, *req.Balance)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// ListBookings returns all bookings, newest first.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Reporter.Bookings(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// BookRoom books a room.
// POST /api/bookings
func (h *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	var req BookRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	bookingReq := hotel.BookingRequest{
		UserID:     req.UserID,
		RoomNumber: req.RoomNumber,
	}

	// Missing dates stay zero and are rejected by the service as invalid
	// dates; unparseable ones are rejected here.
	var err error
	if req.CheckIn != "" {
		if bookingReq.CheckIn, err = generic.ParseTimePoint(req.CheckIn); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid check_in format (use YYYY-MM-DD)", err)
			return
		}
	}
	if req.CheckOut != "" {
		if bookingReq.CheckOut, err = generic.ParseTimePoint(req.CheckOut); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid check_out format (use YYYY-MM-DD)", err)
			return
		}
	}

	if raw := r.Header.Get(IdempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid Idempotency-Key (must be a UUID)", err)
			return
		}
		bookingReq.IdempotencyKey = key.String()
	}

	booking, err := h.Service.BookRoom(r.Context(), bookingReq)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingDTO(booking))
}

// =============================================================================
// REPORT
// =============================================================================

// GetReport returns rooms, bookings, users and a summary.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reporter.Build(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	dto := ReportDTO{
		Rooms:    make([]RoomDTO, len(report.Rooms)),
		Bookings: make([]BookingDTO, len(report.Bookings)),
		Users:    make([]UserDTO, len(report.Users)),
		Summary:  toSummaryDTO(report.Summary),
	}
	for i, room := range report.Rooms {
		dto.Rooms[i] = toRoomDTO(room)
	}
	for i, b := range report.Bookings {
		dto.Bookings[i] = toBookingDTO(b)
	}
	for i, u := range report.Users {
		dto.Users[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a hotel error to its HTTP status.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "error", err)
		writeJSON(w, status, ErrorResponse{Error: "Internal error", Code: hotel.Kind(err)})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: hotel.Kind(err)})
}

func statusFor(err error) int {
	switch {
	case hotel.IsClientError(err):
		return http.StatusBadRequest
	case hotel.IsNotFound(err):
		return http.StatusNotFound
	case hotel.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, hotel.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+": "+raw, err)
		return 0, false
	}
	return n, true
}
