/*
Package sqlite provides a SQLite-backed hotel.BookingStore.

PURPOSE:
  An alternative backend for the booking ledger. It keeps the same
  append-only contract as the in-memory store; the default DSN is
  ":memory:", so nothing outlives the process unless a file path is given.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the bookings table
  - No DELETE statements except Reset (demo scenarios)

KEY TABLE:
  bookings: one row per confirmed stay, with the room type and price
            copied at booking time

INDEXES:
  - idx_bookings_room: availability checks (hot path)
  - idx_bookings_idempotency: UNIQUE, replay of retried requests

CONCURRENCY:
  Uses sync.RWMutex around the connection and a single open connection, so
  an in-memory database is shared by every query.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger, err := hotel.NewBookingLedger(ctx, store)
*/
package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/hotel-engine/generic"
	"github.com/warp/hotel-engine/hotel"
)

// Store implements hotel.BookingStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database. The DSN may carry its own query
// parameters (file:hotel.db?cache=shared); the store's are appended to them.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", withDriverParams(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Bookings (append-only ledger)
	CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		room_number INTEGER NOT NULL,
		room_type TEXT NOT NULL,
		price_per_night INTEGER NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		number_of_nights INTEGER NOT NULL,
		total_cost INTEGER NOT NULL,
		idempotency_key TEXT,
		created_at TEXT NOT NULL,
		seq INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_room
		ON bookings(room_number, check_in);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_idempotency
		ON bookings(idempotency_key) WHERE idempotency_key IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_bookings_seq
		ON bookings(seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BOOKING STORE (hotel.BookingStore interface)
// =============================================================================

// Append adds a booking to the ledger.
func (s *Store) Append(ctx context.Context, b hotel.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO bookings
		(id, user_id, room_number, room_type, price_per_night, check_in, check_out,
		 number_of_nights, total_cost, idempotency_key, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        (SELECT COALESCE(MAX(seq), 0) + 1 FROM bookings))
	`

	_, err := s.db.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		b.RoomNumber,
		string(b.RoomType),
		b.PricePerNight,
		b.CheckIn.String(),
		b.CheckOut.String(),
		b.NumberOfNights,
		b.TotalCost,
		nullString(b.IdempotencyKey),
		formatTime(b.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(err.Error(), "idempotency_key") {
				return hotel.ErrDuplicateIdempotencyKey
			}
			return hotel.ErrDuplicateBookingID
		}
		return errors.Wrap(err, "failed to append booking")
	}
	return nil
}

// List returns every booking in insertion order.
func (s *Store) List(ctx context.Context) ([]hotel.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryBookings(ctx, selectBookings+` ORDER BY seq ASC`)
}

// ListByRoom returns the bookings of a room in insertion order.
func (s *Store) ListByRoom(ctx context.Context, roomNumber int) ([]hotel.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryBookings(ctx, selectBookings+` WHERE room_number = ? ORDER BY seq ASC`, roomNumber)
}

// FindByIdempotencyKey returns the booking recorded under key, or nil.
func (s *Store) FindByIdempotencyKey(ctx context.Context, key string) (*hotel.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings, err := s.queryBookings(ctx, selectBookings+` WHERE idempotency_key = ?`, key)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return &bookings[0], nil
}

// MaxID returns the highest booking id, or 0 for an empty table.
func (s *Store) MaxID(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var maxID int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM bookings").Scan(&maxID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read max booking id")
	}
	return maxID, nil
}

// Reset deletes every booking.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM bookings"); err != nil {
		return errors.Wrap(err, "failed to reset bookings")
	}
	return nil
}

const selectBookings = `
	SELECT id, user_id, room_number, room_type, price_per_night, check_in, check_out,
	       number_of_nights, total_cost, idempotency_key, created_at
	FROM bookings`

func (s *Store) queryBookings(ctx context.Context, query string, args ...any) ([]hotel.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query bookings")
	}
	defer rows.Close()

	var bookings []hotel.Booking
	for rows.Next() {
		var (
			b                 hotel.Booking
			roomType          string
			checkIn, checkOut string
			idempotencyKey    sql.NullString
			createdAt         string
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RoomNumber, &roomType, &b.PricePerNight,
			&checkIn, &checkOut, &b.NumberOfNights, &b.TotalCost,
			&idempotencyKey, &createdAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan booking")
		}

		b.RoomType = hotel.RoomType(roomType)
		b.IdempotencyKey = idempotencyKey.String
		if b.CheckIn, err = generic.ParseTimePoint(checkIn); err != nil {
			return nil, errors.Wrapf(err, "booking %d: bad check_in", b.ID)
		}
		if b.CheckOut, err = generic.ParseTimePoint(checkOut); err != nil {
			return nil, errors.Wrapf(err, "booking %d: bad check_out", b.ID)
		}
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, errors.Wrapf(err, "booking %d: bad created_at", b.ID)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

const driverParams = "_foreign_keys=on&_journal_mode=WAL"

func withDriverParams(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + driverParams
	}
	return dsn + "?" + driverParams
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ hotel.BookingStore = (*Store)(nil)
