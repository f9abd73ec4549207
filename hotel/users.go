package hotel

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/warp/hotel-engine/generic"
)

// =============================================================================
// USER STORE
// =============================================================================

// UserStore holds users keyed by id. Each user carries its own lock so a
// balance change is atomic with respect to reads of that user, without
// blocking unrelated users.
type UserStore struct {
	mu    sync.RWMutex
	users map[int]*userRecord

	log   *slog.Logger
	clock generic.Clock
}

type userRecord struct {
	mu   sync.RWMutex
	user User
}

func (r *userRecord) snapshot() User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.user
}

func NewUserStore(opts ...Option) *UserStore {
	o := buildOptions(opts)
	return &UserStore{
		users: make(map[int]*userRecord),
		log:   o.logger.With("component", "user_store"),
		clock: o.clock,
	}
}

// Upsert creates user id with balance, or replaces the balance of an
// existing user.
func (s *UserStore) Upsert(id int, balance int) (User, error) {
	if id <= 0 {
		return User{}, &InvalidArgumentError{Field: "user id", Value: id, Reason: "must be positive"}
	}
	if balance < 0 {
		return User{}, &InvalidArgumentError{Field: "balance", Value: balance, Reason: "cannot be negative"}
	}

	now := s.clock.Now()

	s.mu.Lock()
	rec, ok := s.users[id]
	if !ok {
		rec = &userRecord{user: User{ID: id, Balance: balance, CreatedAt: now}}
		s.users[id] = rec
		s.mu.Unlock()
		s.log.Info("user created", "user_id", id, "balance", balance)
		return rec.snapshot(), nil
	}
	s.mu.Unlock()

	rec.mu.Lock()
	rec.user.Balance = balance
	rec.user.LastModifiedAt = now
	updated := rec.user
	rec.mu.Unlock()

	s.log.Info("user updated", "user_id", id, "balance", balance)
	return updated, nil
}

// FindByID returns the user, or false if there is none.
func (s *UserStore) FindByID(id int) (User, bool) {
	rec, ok := s.record(id)
	if !ok {
		return User{}, false
	}
	return rec.snapshot(), true
}

// HasSufficientBalance reports whether user id exists and holds at least
// amount. A missing user and a poor user both yield false; call FindByID
// first when the difference matters.
func (s *UserStore) HasSufficientBalance(id int, amount int) bool {
	user, ok := s.FindByID(id)
	return ok && user.Balance >= amount
}

// Deduct removes amount from the balance of user id.
//
// A missing user is a *NotFoundError, like every other lookup in the
// package. An amount above the balance is an *InvalidArgumentError.
func (s *UserStore) Deduct(id int, amount int) (User, error) {
	rec, ok := s.record(id)
	if !ok {
		return User{}, &NotFoundError{Kind: KindUser, ID: id}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if err := s.deductLocked(rec, amount); err != nil {
		return User{}, err
	}
	return rec.user, nil
}

// Charge runs commit and then deducts amount from user id, holding the
// user's lock for the whole sequence. The balance is re-checked under the
// lock first, so a concurrent Upsert or Charge cannot leave commit applied
// without its deduction. If commit fails nothing is deducted.
func (s *UserStore) Charge(id int, amount int, commit func() error) (User, error) {
	if amount < 0 {
		return User{}, &InvalidArgumentError{Field: "amount", Value: amount, Reason: "cannot be negative"}
	}
	rec, ok := s.record(id)
	if !ok {
		return User{}, &NotFoundError{Kind: KindUser, ID: id}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.user.Balance < amount {
		return User{}, &InsufficientBalanceError{UserID: id, Required: amount, Available: rec.user.Balance}
	}
	if err := commit(); err != nil {
		return User{}, err
	}
	if err := s.deductLocked(rec, amount); err != nil {
		// Unreachable: the balance was checked above under the same lock.
		return User{}, err
	}
	return rec.user, nil
}

func (s *UserStore) deductLocked(rec *userRecord, amount int) error {
	if amount < 0 {
		return &InvalidArgumentError{Field: "amount", Value: amount, Reason: "cannot be negative"}
	}
	if amount > rec.user.Balance {
		return &InvalidArgumentError{
			Field:  "amount",
			Value:  amount,
			Reason: fmt.Sprintf("exceeds balance %d", rec.user.Balance),
		}
	}
	rec.user.Balance -= amount
	rec.user.LastModifiedAt = s.clock.Now()
	s.log.Info("balance deducted", "user_id", rec.user.ID, "amount", amount, "balance", rec.user.Balance)
	return nil
}

// List returns every user in no particular order.
func (s *UserStore) List() []User {
	s.mu.RLock()
	records := make([]*userRecord, 0, len(s.users))
	for _, rec := range s.users {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	out := make([]User, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.snapshot())
	}
	return out
}

// Len returns the number of users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Reset removes every user.
func (s *UserStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[int]*userRecord)
}

func (s *UserStore) record(id int) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	return rec, ok
}
