package commands

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const DefaultReservationTimeout = 8 * time.Second

type ReserveInput struct {
	VehicleID       uuid.UUID
	RenterID        uuid.UUID
	Range           availability.DateRange
	PickupLocation  string
	DropoffLocation string
}

// ReservationToken identifies a pending booking that holds its range.
type ReservationToken struct {
	BookingID  uuid.UUID
	VehicleID  uuid.UUID
	Range      availability.DateRange
	ReservedAt time.Time
}

type SetAvailabilityInput struct {
	VehicleID    uuid.UUID
	Range        availability.DateRange
	IsAvailable  bool
	Reason       availability.Reason
	CustomReason string
}

type RangeCheck struct {
	Free                bool
	BlockedDates        []time.Time
	ConflictingBookings []uuid.UUID
}

type AvailabilityCommands interface {
	SetAvailability(ctx context.Context, actor shared.Actor, in SetAvailabilityInput) ([]availability.Day, error)
	Release(ctx context.Context, bookingID uuid.UUID) (int, error)
}

// ReservationCoordinator owns every write to a vehicle's bookings and ledger days.
// Each operation locks the vehicle row first, so concurrent callers on the same
// vehicle are serialized and the conflict check and the write are atomic.
type ReservationCoordinator struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	timeout time.Duration
}

func NewReservationCoordinator(uow shared.UnitOfWork, clk clock.Clock, timeout time.Duration) *ReservationCoordinator {
	if timeout <= 0 {
		timeout = DefaultReservationTimeout
	}
	return &ReservationCoordinator{uow: uow, clock: clk, timeout: timeout}
}

// within bounds fn by the reservation timeout and classifies its error.
func (c *ReservationCoordinator) within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.uow.Within(ctx, fn)
	if err != nil && ctx.Err() != nil && !errs.Is(err, errs.ErrConflict) {
		return errs.Mark(errs.Wrap(err, "reservation timed out"), ErrReservationTimeout)
	}
	return classify(err)
}

func (c *ReservationCoordinator) Reserve(ctx context.Context, in ReserveInput) (*ReservationToken, *booking.Booking, error) {
	var reserved *booking.Booking
	err := c.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, rerr := c.reserveTx(ctx, tx, in)
		if rerr != nil {
			return rerr
		}
		reserved = b
		return enqueueEvent(ctx, tx, b, booking.EventCreated, b.CreatedAt())
	})
	if err != nil {
		return nil, nil, err
	}

	token := &ReservationToken{
		BookingID:  reserved.ID(),
		VehicleID:  reserved.VehicleID(),
		Range:      reserved.Period(),
		ReservedAt: reserved.CreatedAt(),
	}
	return token, reserved, nil
}

func (c *ReservationCoordinator) reserveTx(ctx context.Context, tx shared.Tx, in ReserveInput) (*booking.Booking, error) {
	v, err := lockVehicle(ctx, tx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(&booking.Services{Clock: c.clock}, *v, in.RenterID, in.Range, in.PickupLocation, in.DropoffLocation)
	if err != nil {
		return nil, err
	}

	conflict, err := c.checkRange(ctx, tx, v.ID, b.Period())
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, &ConflictError{VehicleID: v.ID, Range: b.Period()}
		}
		return nil, err
	}
	return b, nil
}

// Commit marks the booking's days booked. The booking must already be in a
// ledger-committed status.
func (c *ReservationCoordinator) Commit(ctx context.Context, bookingID uuid.UUID) error {
	return c.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, _, err := loadLocked(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !b.Status().LedgerCommitted() {
			return &booking.TransitionError{From: b.Status(), Action: booking.ActionAccept}
		}
		return c.commitTx(ctx, tx, b)
	})
}

func (c *ReservationCoordinator) commitTx(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	id := b.ID()
	m, err := availability.NewMark(b.VehicleID(), b.OwnerID(), b.Period(), false, availability.ReasonBooked, "", &id)
	if err != nil {
		return err
	}
	return tx.Ledger().MarkRange(ctx, m, c.clock.Now())
}

// Release reopens the days committed by a cancelled or rejected booking.
// Calling it again changes nothing.
func (c *ReservationCoordinator) Release(ctx context.Context, bookingID uuid.UUID) (int, error) {
	var released int
	err := c.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, _, err := loadLocked(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status().HoldsDates() {
			return ErrBookingStillActive
		}
		released, err = tx.Ledger().ReleaseBooking(ctx, b.ID(), c.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// IsRangeFree runs the same check Reserve does, without reserving.
func (c *ReservationCoordinator) IsRangeFree(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) (*RangeCheck, error) {
	if r.IsZero() {
		return nil, classify(availability.ErrInvalidRange)
	}

	result := &RangeCheck{Free: true}
	err := c.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := findVehicle(ctx, tx, vehicleID); err != nil {
			return err
		}
		conflict, err := c.checkRange(ctx, tx, vehicleID, r)
		if err != nil {
			return err
		}
		if conflict != nil {
			result = &RangeCheck{
				Free:                false,
				BlockedDates:        conflict.BlockedDates,
				ConflictingBookings: conflict.ConflictingBookings,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetAvailability is the owner-facing markRange. Days held by an active booking
// cannot be overridden.
func (c *ReservationCoordinator) SetAvailability(ctx context.Context, actor shared.Actor, in SetAvailabilityInput) ([]availability.Day, error) {
	if in.Reason == availability.ReasonBooked {
		return nil, ErrReservedReason
	}

	var days []availability.Day
	err := c.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := lockVehicle(ctx, tx, in.VehicleID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && actor.UserID != v.OwnerID {
			return ErrNotPermitted
		}

		m, err := availability.NewMark(v.ID, v.OwnerID, in.Range, in.IsAvailable, in.Reason, in.CustomReason, nil)
		if err != nil {
			return err
		}

		active, err := tx.Bookings().FindActiveOverlapping(ctx, v.ID, m.Range)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return bookingConflict(v.ID, m.Range, nil, active)
		}

		if err := tx.Ledger().MarkRange(ctx, m, c.clock.Now()); err != nil {
			return err
		}
		days, err = tx.Ledger().ListRange(ctx, v.ID, m.Range)
		return err
	})
	if err != nil {
		return nil, err
	}
	return days, nil
}

// checkRange is the unified conflict check: explicit unavailable ledger days
// plus active bookings overlapping r. It returns nil when r is free.
func (c *ReservationCoordinator) checkRange(ctx context.Context, tx shared.Tx, vehicleID uuid.UUID, r availability.DateRange) (*ConflictError, error) {
	days, err := tx.Ledger().ListRange(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}
	overlapping, err := tx.Bookings().FindActiveOverlapping(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}

	blocked := availability.BlockedDates(days, r)
	if len(blocked) == 0 && len(overlapping) == 0 {
		return nil, nil
	}
	return bookingConflict(vehicleID, r, blocked, overlapping), nil
}

func bookingConflict(vehicleID uuid.UUID, r availability.DateRange, blocked []time.Time, overlapping []*booking.Booking) *ConflictError {
	seen := make(map[time.Time]struct{}, len(blocked))
	dates := make([]time.Time, 0, len(blocked))
	add := func(d time.Time) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	for _, d := range blocked {
		add(d)
	}

	ids := make([]uuid.UUID, 0, len(overlapping))
	for _, b := range overlapping {
		ids = append(ids, b.ID())
		for _, d := range b.Period().Dates() {
			if r.Contains(d) {
				add(d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return &ConflictError{
		VehicleID:           vehicleID,
		Range:               r,
		BlockedDates:        dates,
		ConflictingBookings: ids,
	}
}

func findVehicle(ctx context.Context, tx shared.Tx, id uuid.UUID) (*vehicle.Spec, error) {
	v, err := tx.Vehicles().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func lockVehicle(ctx context.Context, tx shared.Tx, id uuid.UUID) (*vehicle.Spec, error) {
	v, err := tx.Vehicles().LockByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// loadLocked takes the vehicle lock before reading the booking so every writer
// acquires locks in the same order.
func loadLocked(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, *vehicle.Spec, error) {
	b, err := findBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	v, err := lockVehicle(ctx, tx, b.VehicleID())
	if err != nil {
		return nil, nil, err
	}
	b, err = findBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	return b, v, nil
}

func findBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func enqueueEvent(ctx context.Context, tx shared.Tx, b *booking.Booking, t booking.EventType, at time.Time) error {
	payload, err := json.Marshal(b.NewEvent(t, at))
	if err != nil {
		return err
	}
	return tx.Outbox().Enqueue(ctx, shared.OutboxJob{
		Kind:    shared.JobKindBookingEvent,
		Topic:   t.String(),
		Payload: payload,
		RunAt:   at,
	})
}
