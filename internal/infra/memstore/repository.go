package memstore

import (
	"context"
	"sort"
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

type vehicleRepo struct {
	st *state
}

func (r *vehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*vehicle.Spec, error) {
	v, ok := r.st.vehicles[id]
	if !ok {
		return nil, notFound("vehicle")
	}
	return &v, nil
}

// LockByID needs no extra lock: the unit of work already holds the store.
func (r *vehicleRepo) LockByID(ctx context.Context, id uuid.UUID) (*vehicle.Spec, error) {
	return r.FindByID(ctx, id)
}

func (r *vehicleRepo) Upsert(_ context.Context, v vehicle.Spec, _ time.Time) error {
	r.st.vehicles[v.ID] = v
	return nil
}

type bookingRepo struct {
	st *state
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", errs.New("duplicate booking id"), infra.KindDuplicateKey)
	}
	// Mirrors the bookings_no_overlap exclusion constraint.
	if b.Status().HoldsDates() && len(activeOverlapping(r.st, b.VehicleID(), b.Period(), b.ID())) > 0 {
		return infra.WrapRepoErr("overlapping active booking", errs.New("exclusion violation"), infra.KindConflict)
	}
	r.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.st.bookings[b.ID()]; !ok {
		return notFound("booking")
	}
	r.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return reconstruct(snap)
}

func (r *bookingRepo) FindActiveOverlapping(_ context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]*booking.Booking, error) {
	snaps := activeOverlapping(r.st, vehicleID, rg, uuid.Nil)
	out := make([]*booking.Booking, 0, len(snaps))
	for _, s := range snaps {
		b, err := reconstruct(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func activeOverlapping(st *state, vehicleID uuid.UUID, rg availability.DateRange, exclude uuid.UUID) []booking.Snapshot {
	var out []booking.Snapshot
	for id, s := range st.bookings {
		if id == exclude || s.VehicleID != vehicleID {
			continue
		}
		status := booking.Status(s.Status)
		if s.Status == "" {
			status = booking.StatusPending
		}
		if !status.HoldsDates() {
			continue
		}
		other, err := availability.NewDateRange(s.StartDate, s.EndDate)
		if err != nil || !other.Overlaps(rg) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func reconstruct(s booking.Snapshot) (*booking.Booking, error) {
	b, err := booking.Reconstruct(s)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return b, nil
}

type ledgerRepo struct {
	st *state
}

func (r *ledgerRepo) ListRange(_ context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]availability.Day, error) {
	return listDays(r.st, vehicleID, rg), nil
}

func listDays(st *state, vehicleID uuid.UUID, rg availability.DateRange) []availability.Day {
	var out []availability.Day
	for _, d := range rg.Dates() {
		if day, ok := st.days[dayKey{vehicleID: vehicleID, date: d}]; ok {
			out = append(out, day)
		}
	}
	return out
}

// MarkRange leaves UpdatedAt untouched for days whose content does not change,
// matching the Postgres upsert.
func (r *ledgerRepo) MarkRange(_ context.Context, m availability.Mark, at time.Time) error {
	for _, day := range m.Apply() {
		key := dayKey{vehicleID: day.VehicleID, date: day.Date}
		if existing, ok := r.st.days[key]; ok && sameDay(existing, day) {
			continue
		}
		day.UpdatedAt = at
		r.st.days[key] = day
	}
	return nil
}

func (r *ledgerRepo) ReleaseBooking(_ context.Context, bookingID uuid.UUID, at time.Time) (int, error) {
	released := 0
	for key, day := range r.st.days {
		if day.BookingID == nil || *day.BookingID != bookingID {
			continue
		}
		day.IsAvailable = true
		day.Reason = availability.ReasonPersonalUse
		day.CustomReason = ""
		day.BookingID = nil
		day.UpdatedAt = at
		r.st.days[key] = day
		released++
	}
	return released, nil
}

func sameDay(a, b availability.Day) bool {
	if a.IsAvailable != b.IsAvailable || a.Reason != b.Reason || a.CustomReason != b.CustomReason || a.OwnerID != b.OwnerID {
		return false
	}
	if (a.BookingID == nil) != (b.BookingID == nil) {
		return false
	}
	return a.BookingID == nil || *a.BookingID == *b.BookingID
}

type earningsRepo struct {
	st *state
}

func (r *earningsRepo) Create(_ context.Context, e *earnings.Earnings) error {
	if _, ok := r.st.earnings[e.BookingID()]; ok {
		return infra.WrapRepoErr("earnings already recorded", errs.New("duplicate booking_id"), infra.KindDuplicateKey)
	}
	r.st.earnings[e.BookingID()] = e.Snapshot()
	return nil
}

func (r *earningsRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*earnings.Earnings, error) {
	row, ok := r.st.earnings[bookingID]
	if !ok {
		return nil, notFound("earnings")
	}
	return earnings.Reconstruct(row)
}

type outboxRepo struct {
	st *state
}

func (r *outboxRepo) Enqueue(_ context.Context, job shared.OutboxJob) error {
	r.st.jobs = append(r.st.jobs, jobRow{
		ID:        uuid.New(),
		Kind:      job.Kind,
		Topic:     job.Topic,
		Payload:   append([]byte(nil), job.Payload...),
		RunAt:     job.RunAt,
		Status:    "queued",
		CreatedAt: job.RunAt,
		UpdatedAt: job.RunAt,
	})
	return nil
}
