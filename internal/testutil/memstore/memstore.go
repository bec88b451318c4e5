// Package memstore is an in-process stand-in for the Postgres repositories,
// the transactor and the room locker. Writes made inside a failed
// transaction are rolled back, and room locks are held until the
// transaction ends, so admission code can be raced with real goroutines.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"reservation/infras/postgres"
	bookingModel "reservation/internal/domains/booking/model"
	bookingRepo "reservation/internal/domains/booking/repository"
	cancellationModel "reservation/internal/domains/cancellation/model"
	cancellationRepo "reservation/internal/domains/cancellation/repository"
	holdModel "reservation/internal/domains/hold/model"
	holdRepo "reservation/internal/domains/hold/repository"
	paymentRepo "reservation/internal/domains/payment/repository"
	roomRepo "reservation/internal/domains/room/repository"
	"reservation/internal/guard"
	"reservation/shared/clock"
	gDto "reservation/shared/dto"
	"reservation/shared/failure"
)

var errNoTransaction = errors.New("memstore: lock requires a transaction")

type Store struct {
	clock clock.Clock

	mu            sync.Mutex
	rooms         map[string]struct{}
	bookings      map[string]bookingModel.Booking
	holds         map[string]holdModel.Hold
	payments      map[string]decimal.Decimal
	cancellations map[string]cancellationModel.Cancellation

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

func New(clk clock.Clock) *Store {
	return &Store{
		clock:         clk,
		rooms:         map[string]struct{}{},
		bookings:      map[string]bookingModel.Booking{},
		holds:         map[string]holdModel.Hold{},
		payments:      map[string]decimal.Decimal{},
		cancellations: map[string]cancellationModel.Cancellation{},
		locks:         map[string]chan struct{}{},
	}
}

func (s *Store) AddRoom(id string) {
	s.mu.Lock()
	s.rooms[id] = struct{}{}
	s.mu.Unlock()
}

func (s *Store) AddBooking(b bookingModel.Booking) {
	s.mu.Lock()
	s.bookings[b.ID] = b
	s.mu.Unlock()
}

func (s *Store) SetPaid(bookingID string, amount decimal.Decimal) {
	s.mu.Lock()
	s.payments[bookingID] = amount
	s.mu.Unlock()
}

func (s *Store) Bookings() []bookingModel.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bookingModel.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out
}

func (s *Store) Holds() []holdModel.Hold {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedHolds(s.holds, func(holdModel.Hold) bool { return true })
}

func (s *Store) Cancellations() []cancellationModel.Cancellation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]cancellationModel.Cancellation, 0, len(s.cancellations))
	for _, c := range s.cancellations {
		out = append(out, c)
	}

	return out
}

func sortedHolds(holds map[string]holdModel.Hold, keep func(holdModel.Hold) bool) []holdModel.Hold {
	out := make([]holdModel.Hold, 0, len(holds))
	for _, h := range holds {
		if keep(h) {
			out = append(out, h)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Token < out[j].Token
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

// transaction

type txKey struct{}

type txState struct {
	undo   []func()
	locked map[string]chan struct{}
}

func txFrom(ctx context.Context) (*txState, bool) {
	st, ok := ctx.Value(txKey{}).(*txState)

	return st, ok
}

// record runs under s.mu.
func (s *Store) record(ctx context.Context, undo func()) {
	if st, ok := txFrom(ctx); ok {
		st.undo = append(st.undo, undo)
	}
}

func (s *Store) Transactor() postgres.Transactor {
	return transactor{s}
}

type transactor struct{ s *Store }

func (t transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	st := &txState{locked: map[string]chan struct{}{}}
	err := fn(context.WithValue(ctx, txKey{}, st))

	if err != nil {
		t.s.mu.Lock()
		for i := len(st.undo) - 1; i >= 0; i-- {
			st.undo[i]()
		}
		t.s.mu.Unlock()
	}

	for _, lock := range st.locked {
		<-lock
	}

	return err
}

// locker

func (s *Store) Locker() guard.Locker {
	return locker{s}
}

type locker struct{ s *Store }

func (l locker) Lock(ctx context.Context, roomID string) error {
	l.s.mu.Lock()
	_, exists := l.s.rooms[roomID]
	l.s.mu.Unlock()

	if !exists {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	return l.s.lock(ctx, "room:"+roomID)
}

// lock takes the named lock for the transaction in ctx. Locks are reentrant
// within one transaction and released when it ends.
func (s *Store) lock(ctx context.Context, name string) error {
	st, ok := txFrom(ctx)
	if !ok {
		return errNoTransaction
	}

	if _, held := st.locked[name]; held {
		return nil
	}

	s.locksMu.Lock()
	lock, ok := s.locks[name]
	if !ok {
		lock = make(chan struct{}, 1)
		s.locks[name] = lock
	}
	s.locksMu.Unlock()

	select {
	case lock <- struct{}{}:
		st.locked[name] = lock

		return nil
	case <-ctx.Done():
		return failure.LockTimeout
	}
}

// rooms

func (s *Store) RoomRepo() roomRepo.Room {
	return rooms{s}
}

type rooms struct{ s *Store }

func (r rooms) Exist(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.rooms[id]

	return ok, nil
}

// payments

func (s *Store) PaymentRepo() paymentRepo.Payment {
	return payments{s}
}

type payments struct{ s *Store }

func (p payments) GetTotalPaid(_ context.Context, bookingID string) (decimal.Decimal, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	return p.s.payments[bookingID], nil
}

// bookings

func (s *Store) BookingRepo() bookingRepo.Booking {
	return bookings{s}
}

type bookings struct{ s *Store }

func (b bookings) Insert(ctx context.Context, booking bookingModel.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.bookings[booking.ID]; ok {
		return errors.New("memstore: duplicate booking id")
	}

	b.s.bookings[booking.ID] = booking
	b.s.record(ctx, func() { delete(b.s.bookings, booking.ID) })

	return nil
}

func (b bookings) GetByID(_ context.Context, id string) (bookingModel.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	return b.s.bookings[id], nil
}

func (b bookings) GetForUpdate(ctx context.Context, id string) (bookingModel.Booking, error) {
	if err := b.s.lock(ctx, "booking:"+id); err != nil {
		return bookingModel.Booking{}, err
	}

	return b.GetByID(ctx, id)
}

func (b bookings) ListByUser(_ context.Context, userID string, params gDto.QueryParams, status *bookingModel.Status) ([]bookingModel.Booking, int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	matched := make([]bookingModel.Booking, 0)

	for _, booking := range b.s.bookings {
		if booking.UserID != userID || (status != nil && booking.Status != *status) {
			continue
		}

		matched = append(matched, booking)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)

	if params.Limit > 0 {
		start := min(max(params.Page-1, 0)*params.Limit, total)
		matched = matched[start:min(start+params.Limit, total)]
	}

	return matched, total, nil
}

func (b bookings) CountOverlapping(_ context.Context, filter bookingModel.OverlapFilter) (int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	count := 0

	for _, booking := range b.s.bookings {
		if filter.Matches(booking) {
			count++
		}
	}

	return count, nil
}

func (b bookings) UpdateStatus(ctx context.Context, id string, status bookingModel.Status, by string, at time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return nil
	}

	previous := booking
	booking.Status = status
	booking.ModifiedBy = by
	booking.ModifiedAt = at
	b.s.bookings[id] = booking
	b.s.record(ctx, func() { b.s.bookings[id] = previous })

	return nil
}

// holds

func (s *Store) HoldRepo() holdRepo.Hold {
	return holds{s}
}

type holds struct{ s *Store }

func (h holds) Now(context.Context) (time.Time, error) {
	return h.s.clock.Now(), nil
}

func (h holds) Insert(ctx context.Context, hold holdModel.Hold) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	if _, ok := h.s.holds[hold.Token]; ok {
		return errors.New("memstore: duplicate hold token")
	}

	h.s.holds[hold.Token] = hold
	h.s.record(ctx, func() { delete(h.s.holds, hold.Token) })

	return nil
}

func (h holds) GetByToken(_ context.Context, token string) (holdModel.Hold, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	return h.s.holds[token], nil
}

func (h holds) FindActiveOverlap(_ context.Context, filter holdModel.OverlapFilter) ([]holdModel.Hold, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	return sortedHolds(h.s.holds, filter.Matches), nil
}

func (h holds) Reshape(ctx context.Context, token string, hold holdModel.Hold) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	current, ok := h.s.holds[token]
	if !ok {
		return nil
	}

	previous := current
	current.CheckIn = hold.CheckIn
	current.CheckOut = hold.CheckOut
	current.ExpiresAt = hold.ExpiresAt
	current.ModifiedAt = hold.ModifiedAt
	h.s.holds[token] = current
	h.s.record(ctx, func() { h.s.holds[token] = previous })

	return nil
}

func (h holds) Extend(ctx context.Context, token string, now, expiresAt time.Time) (bool, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	current, ok := h.s.holds[token]
	if !ok || !current.ActiveAt(now) {
		return false, nil
	}

	previous := current
	current.ExpiresAt = expiresAt
	current.ModifiedAt = now
	h.s.holds[token] = current
	h.s.record(ctx, func() { h.s.holds[token] = previous })

	return true, nil
}

func (h holds) Delete(ctx context.Context, token string) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	current, ok := h.s.holds[token]
	if !ok {
		return nil
	}

	delete(h.s.holds, token)
	h.s.record(ctx, func() { h.s.holds[token] = current })

	return nil
}

func (h holds) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	var deleted int64

	for token, hold := range h.s.holds {
		if hold.ActiveAt(now) {
			continue
		}

		delete(h.s.holds, token)
		h.s.record(ctx, func() { h.s.holds[token] = hold })

		deleted++
	}

	return deleted, nil
}

// cancellations

func (s *Store) CancellationRepo() cancellationRepo.Cancellation {
	return cancellations{s}
}

type cancellations struct{ s *Store }

func (c cancellations) Insert(ctx context.Context, cancellation cancellationModel.Cancellation) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.cancellations[cancellation.ID] = cancellation
	c.s.record(ctx, func() { delete(c.s.cancellations, cancellation.ID) })

	return nil
}

func (c cancellations) GetByID(_ context.Context, id string) (cancellationModel.Cancellation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return c.s.cancellations[id], nil
}

func (c cancellations) GetForUpdate(ctx context.Context, id string) (cancellationModel.Cancellation, error) {
	if err := c.s.lock(ctx, "cancellation:"+id); err != nil {
		return cancellationModel.Cancellation{}, err
	}

	return c.GetByID(ctx, id)
}

func (c cancellations) UpdateStatus(ctx context.Context, id string, status cancellationModel.Status, note string, at time.Time) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	current, ok := c.s.cancellations[id]
	if !ok {
		return false, nil
	}

	previous := current
	current.Status = status
	current.Note = note
	current.ModifiedAt = at
	c.s.cancellations[id] = current
	c.s.record(ctx, func() { c.s.cancellations[id] = previous })

	return true, nil
}
