package hotel

import (
	"log/slog"
	"sync"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// ROOM STORE
// =============================================================================

// RoomStore holds rooms keyed by number. Reads return copies, so a caller
// never observes a room while it is being updated.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[int]*Room

	log   *slog.Logger
	clock generic.Clock
}

func NewRoomStore(opts ...Option) *RoomStore {
	o := buildOptions(opts)
	return &RoomStore{
		rooms: make(map[int]*Room),
		log:   o.logger.With("component", "room_store"),
		clock: o.clock,
	}
}

// Upsert creates room number if it does not exist, otherwise replaces its
// type and price. Existing bookings keep their own snapshot and are not
// touched.
func (s *RoomStore) Upsert(number int, roomType RoomType, pricePerNight int) (Room, error) {
	if number <= 0 {
		return Room{}, &InvalidArgumentError{Field: "room number", Value: number, Reason: "must be positive"}
	}
	if pricePerNight < 0 {
		return Room{}, &InvalidArgumentError{Field: "price per night", Value: pricePerNight, Reason: "cannot be negative"}
	}
	if !roomType.Valid() {
		return Room{}, &InvalidArgumentError{Field: "room type", Value: roomType, Reason: "unknown room type"}
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if room, ok := s.rooms[number]; ok {
		room.Type = roomType
		room.PricePerNight = pricePerNight
		room.LastModifiedAt = now
		s.log.Info("room updated", "number", number, "type", roomType, "price", pricePerNight)
		return *room, nil
	}

	room := &Room{
		Number:        number,
		Type:          roomType,
		PricePerNight: pricePerNight,
		CreatedAt:     now,
	}
	s.rooms[number] = room
	s.log.Info("room created", "number", number, "type", roomType, "price", pricePerNight)
	return *room, nil
}

// FindByNumber returns the room, or false if there is none.
func (s *RoomStore) FindByNumber(number int) (Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[number]
	if !ok {
		return Room{}, false
	}
	return *room, true
}

// List returns every room in no particular order.
func (s *RoomStore) List() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	return out
}

// Len returns the number of rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Reset removes every room.
func (s *RoomStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = make(map[int]*Room)
}
