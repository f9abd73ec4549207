package hotel_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/hotel"
)

func TestRoomStore_UpsertCreatesThenUpdates(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)

	created, err := rooms.Upsert(1, hotel.RoomStandard, 1000)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.True(t, created.LastModifiedAt.IsZero())

	updated, err := rooms.Upsert(1, hotel.RoomSuite, 5000)
	require.NoError(t, err)
	assert.Equal(t, hotel.RoomSuite, updated.Type)
	assert.Equal(t, 5000, updated.PricePerNight)
	assert.Equal(t, now, updated.CreatedAt, "creation time survives updates")
	assert.Equal(t, now, updated.LastModifiedAt)

	assert.Equal(t, 1, rooms.Len(), "upsert never creates a second room with the same number")
}

func TestRoomStore_UpsertIsIdempotent(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)

	first, err := rooms.Upsert(2, hotel.RoomJunior, 2000)
	require.NoError(t, err)
	second, err := rooms.Upsert(2, hotel.RoomJunior, 2000)
	require.NoError(t, err)

	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.PricePerNight, second.PricePerNight)
	assert.Equal(t, 1, rooms.Len())
}

func TestRoomStore_UpsertRejectsBadInput(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)

	tests := []struct {
		name     string
		number   int
		roomType hotel.RoomType
		price    int
		field    string
	}{
		{"zero number", 0, hotel.RoomStandard, 1000, "room number"},
		{"negative number", -4, hotel.RoomStandard, 1000, "room number"},
		{"negative price", 1, hotel.RoomStandard, -1, "price per night"},
		{"unknown type", 1, hotel.RoomType("PENTHOUSE"), 1000, "room type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rooms.Upsert(tt.number, tt.roomType, tt.price)
			require.ErrorIs(t, err, hotel.ErrInvalidArgument)

			var argErr *hotel.InvalidArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.field, argErr.Field)
		})
	}
	assert.Equal(t, 0, rooms.Len(), "rejected upserts leave the store untouched")
}

func TestRoomStore_ZeroPriceIsAllowed(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)
	_, err := rooms.Upsert(9, hotel.RoomStandard, 0)
	assert.NoError(t, err)
}

func TestRoomStore_FindReturnsCopy(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)
	_, err := rooms.Upsert(1, hotel.RoomStandard, 1000)
	require.NoError(t, err)

	room, ok := rooms.FindByNumber(1)
	require.True(t, ok)
	room.PricePerNight = 1

	again, _ := rooms.FindByNumber(1)
	assert.Equal(t, 1000, again.PricePerNight)

	_, ok = rooms.FindByNumber(42)
	assert.False(t, ok)
}

func TestRoomStore_Reset(t *testing.T) {
	rooms := hotel.NewRoomStore(testOptions()...)
	_, _ = rooms.Upsert(1, hotel.RoomStandard, 1000)
	_, _ = rooms.Upsert(2, hotel.RoomJunior, 2000)

	rooms.Reset()
	assert.Equal(t, 0, rooms.Len())
	assert.Empty(t, rooms.List())
}
