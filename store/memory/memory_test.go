package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/generic"
	"github.com/warp/hotel-engine/hotel"
	"github.com/warp/hotel-engine/store/memory"
)

func booking(id, room int, key string) hotel.Booking {
	in := generic.NewTimePoint(2026, time.July, 7)
	return hotel.Booking{
		ID:             id,
		UserID:         1,
		RoomNumber:     room,
		RoomType:       hotel.RoomStandard,
		PricePerNight:  1000,
		CheckIn:        in,
		CheckOut:       in.AddDays(1),
		NumberOfNights: 1,
		TotalCost:      1000,
		IdempotencyKey: key,
	}
}

func TestMemory_AppendAndList(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()

	require.NoError(t, m.Append(ctx, booking(1, 1, "")))
	require.NoError(t, m.Append(ctx, booking(2, 2, "")))
	require.NoError(t, m.Append(ctx, booking(3, 1, "")))

	all, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID, "insertion order")

	room1, err := m.ListByRoom(ctx, 1)
	require.NoError(t, err)
	require.Len(t, room1, 2)
	assert.Equal(t, 1, room1[0].ID)
	assert.Equal(t, 3, room1[1].ID)

	none, err := m.ListByRoom(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()
	require.NoError(t, m.Append(ctx, booking(1, 1, "")))

	all, _ := m.List(ctx)
	all[0].TotalCost = 0

	again, _ := m.List(ctx)
	assert.Equal(t, 1000, again[0].TotalCost)
}

func TestMemory_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()
	require.NoError(t, m.Append(ctx, booking(1, 1, "k")))

	assert.ErrorIs(t, m.Append(ctx, booking(1, 2, "")), hotel.ErrDuplicateBookingID)
	assert.ErrorIs(t, m.Append(ctx, booking(2, 2, "k")), hotel.ErrDuplicateIdempotencyKey)

	all, _ := m.List(ctx)
	assert.Len(t, all, 1)
}

func TestMemory_IdempotencyLookup(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()
	require.NoError(t, m.Append(ctx, booking(5, 1, "abc")))

	found, err := m.FindByIdempotencyKey(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 5, found.ID)

	missing, err := m.FindByIdempotencyKey(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_MaxIDAndReset(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()

	maxID, err := m.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxID)

	require.NoError(t, m.Append(ctx, booking(7, 1, "")))
	require.NoError(t, m.Append(ctx, booking(3, 2, "")))
	maxID, _ = m.MaxID(ctx)
	assert.Equal(t, 7, maxID)

	require.NoError(t, m.Reset(ctx))
	all, _ := m.List(ctx)
	assert.Empty(t, all)
	maxID, _ = m.MaxID(ctx)
	assert.Equal(t, 0, maxID)
}
