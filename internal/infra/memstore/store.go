// Package memstore is the in-process storage driver. A single store-wide lock
// makes every unit of work linearizable; a failed unit of work restores the
// state it started from.
package memstore

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type dayKey struct {
	vehicleID uuid.UUID
	date      time.Time
}

type jobRow struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	Status    string
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type state struct {
	vehicles map[uuid.UUID]vehicle.Spec
	bookings map[uuid.UUID]booking.Snapshot
	days     map[dayKey]availability.Day
	earnings map[uuid.UUID]earnings.Snapshot // keyed by booking id
	jobs     []jobRow
}

func (s *state) clone() *state {
	c := &state{
		vehicles: make(map[uuid.UUID]vehicle.Spec, len(s.vehicles)),
		bookings: make(map[uuid.UUID]booking.Snapshot, len(s.bookings)),
		days:     make(map[dayKey]availability.Day, len(s.days)),
		earnings: make(map[uuid.UUID]earnings.Snapshot, len(s.earnings)),
		jobs:     make([]jobRow, len(s.jobs)),
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.days {
		c.days[k] = v
	}
	for k, v := range s.earnings {
		c.earnings[k] = v
	}
	copy(c.jobs, s.jobs)
	return c
}

type Store struct {
	sem   chan struct{}
	state *state
}

func New() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		state: &state{
			vehicles: map[uuid.UUID]vehicle.Spec{},
			bookings: map[uuid.UUID]booking.Snapshot{},
			days:     map[dayKey]availability.Day{},
			earnings: map[uuid.UUID]earnings.Snapshot{},
		},
	}
}

// lock waits for the store lock or for ctx to end.
func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return infra.WrapRepoErr("waiting for store lock", ctx.Err(), infra.KindTimeout)
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// view runs fn under the store lock without rollback support.
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	return fn(s.state)
}

// Within implements shared.UnitOfWork.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	saved := s.state.clone()
	err := fn(ctx, &memTx{st: s.state})
	if err == nil && ctx.Err() != nil {
		err = infra.WrapRepoErr("transaction deadline exceeded", ctx.Err(), infra.KindTimeout)
	}
	if err != nil {
		s.state = saved
		return err
	}
	return nil
}

type memTx struct {
	st *state
}

func (t *memTx) Vehicles() shared.VehicleRepository  { return &vehicleRepo{st: t.st} }
func (t *memTx) Bookings() shared.BookingRepository  { return &bookingRepo{st: t.st} }
func (t *memTx) Ledger() shared.LedgerRepository     { return &ledgerRepo{st: t.st} }
func (t *memTx) Earnings() shared.EarningsRepository { return &earningsRepo{st: t.st} }
func (t *memTx) Outbox() shared.OutboxRepository     { return &outboxRepo{st: t.st} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", errs.New(what+" not found"), infra.KindNotFound)
}
