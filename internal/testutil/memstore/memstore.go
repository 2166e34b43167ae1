// Package memstore is an in-memory implementation of every repository plus a
// Transactor, for service tests. Transactions are serialized by one mutex and
// roll back to a snapshot on error, which is enough to observe atomicity and
// the outcome of racing writers.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"ticketeer/internal/areas"
	"ticketeer/internal/eventareas"
	"ticketeer/internal/events"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/tickets"
	"ticketeer/internal/users"
	"ticketeer/internal/venues"
)

type state struct {
	venues     map[int64]venues.Venue
	layouts    map[int64]venues.Layout
	areas      map[int64]areas.Area
	seats      map[int64]areas.Seat
	events     map[int64]events.Event
	eventAreas map[int64]eventareas.EventArea
	eventSeats map[int64]eventareas.EventSeat
	users      map[int64]users.User
	tickets    map[int64]tickets.Ticket
}

func newState() *state {
	return &state{
		venues:     map[int64]venues.Venue{},
		layouts:    map[int64]venues.Layout{},
		areas:      map[int64]areas.Area{},
		seats:      map[int64]areas.Seat{},
		events:     map[int64]events.Event{},
		eventAreas: map[int64]eventareas.EventArea{},
		eventSeats: map[int64]eventareas.EventSeat{},
		users:      map[int64]users.User{},
		tickets:    map[int64]tickets.Ticket{},
	}
}

func (s *state) clone() *state {
	return &state{
		venues:     maps.Clone(s.venues),
		layouts:    maps.Clone(s.layouts),
		areas:      maps.Clone(s.areas),
		seats:      maps.Clone(s.seats),
		events:     maps.Clone(s.events),
		eventAreas: maps.Clone(s.eventAreas),
		eventSeats: maps.Clone(s.eventSeats),
		users:      maps.Clone(s.users),
		tickets:    maps.Clone(s.tickets),
	}
}

type txKey struct{}

var (
	_ database.Transactor   = (*Store)(nil)
	_ venues.Repository     = (*Store)(nil)
	_ areas.Repository      = (*Store)(nil)
	_ events.Repository     = (*Store)(nil)
	_ eventareas.Repository = (*Store)(nil)
	_ users.Repository      = (*Store)(nil)
	_ tickets.Repository    = (*Store)(nil)
)

// Store satisfies venues, areas, events, eventareas, users and tickets
// Repository, and database.Transactor.
type Store struct {
	mu       sync.Mutex
	data     *state
	nextID   int64
	failures map[string]error
	now      func() time.Time
}

func New() *Store {
	return &Store{
		data:     newState(),
		failures: map[string]error{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// FailNext makes the next call of the named method return err.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// WithTx runs fn holding the store lock and restores the snapshot taken at
// the start if fn fails. Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// do runs fn against the live state, taking the lock unless ctx already
// holds it.
func (s *Store) do(ctx context.Context, method string, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if err, ok := s.failures[method]; ok {
		delete(s.failures, method)
		return err
	}
	return fn(s.data)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// rows returns the values of m ordered by id, keeping those keep accepts.
func rows[T any](m map[int64]T, keep func(*T) bool) []T {
	out := []T{}
	for _, id := range slices.Sorted(maps.Keys(m)) {
		v := m[id]
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	return out
}

func page[T any](all []T, q pagination.Query) ([]T, int64, error) {
	r := pagination.Slice(all, q)
	return r.Items, r.TotalCount, nil
}

func deleteIDs[T any](m map[int64]T, ids []int64) int {
	n := 0
	for _, id := range ids {
		if _, ok := m[id]; ok {
			delete(m, id)
			n++
		}
	}
	return n
}

// checkVersion mirrors the conditional update of the gorm repositories.
func checkVersion(entity string, id int64, exists bool, stored, given int64) error {
	if !exists {
		return apperr.NotFound(entity, id)
	}
	if stored != given {
		return apperr.Conflict(entity, id)
	}
	return nil
}

func duplicate(entity string) error {
	return apperr.Invalid(entity, "", "already exists")
}
