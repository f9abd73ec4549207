// Package memory provides an in-memory hotel.BookingStore.
package memory

import (
	"context"
	"sync"

	"github.com/warp/hotel-engine/hotel"
)

// =============================================================================
// MEMORY STORE - In-memory booking store (default backend)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	bookings    []hotel.Booking
	byRoom      map[int][]int // room number -> positions in bookings
	ids         map[int]bool
	idempotency map[string]int // key -> position in bookings
}

func NewMemory() *Memory {
	m := &Memory{}
	m.resetLocked()
	return m
}

// Append adds a booking. Append-only.
func (m *Memory) Append(_ context.Context, b hotel.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ids[b.ID] {
		return hotel.ErrDuplicateBookingID
	}
	if b.IdempotencyKey != "" {
		if _, taken := m.idempotency[b.IdempotencyKey]; taken {
			return hotel.ErrDuplicateIdempotencyKey
		}
	}

	pos := len(m.bookings)
	m.bookings = append(m.bookings, b)
	m.byRoom[b.RoomNumber] = append(m.byRoom[b.RoomNumber], pos)
	m.ids[b.ID] = true
	if b.IdempotencyKey != "" {
		m.idempotency[b.IdempotencyKey] = pos
	}
	return nil
}

func (m *Memory) List(_ context.Context) ([]hotel.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]hotel.Booking, len(m.bookings))
	copy(result, m.bookings)
	return result, nil
}

func (m *Memory) ListByRoom(_ context.Context, roomNumber int) ([]hotel.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	positions := m.byRoom[roomNumber]
	result := make([]hotel.Booking, 0, len(positions))
	for _, pos := range positions {
		result = append(result, m.bookings[pos])
	}
	return result, nil
}

func (m *Memory) FindByIdempotencyKey(_ context.Context, key string) (*hotel.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pos, ok := m.idempotency[key]
	if !ok {
		return nil, nil
	}
	b := m.bookings[pos]
	return &b, nil
}

func (m *Memory) MaxID(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	maxID := 0
	for id := range m.ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	return nil
}

func (m *Memory) resetLocked() {
	m.bookings = nil
	m.byRoom = make(map[int][]int)
	m.ids = make(map[int]bool)
	m.idempotency = make(map[string]int)
}

var _ hotel.BookingStore = (*Memory)(nil)
