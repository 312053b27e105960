package memstore

import (
	"context"
	"sort"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra/relay"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingReadStore implements queries.BookingReadStore.
type BookingReadStore struct {
	s *Store
}

func NewBookingReadStore(s *Store) *BookingReadStore {
	return &BookingReadStore{s: s}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView
	err := r.s.view(ctx, func(st *state) error {
		snap, ok := st.bookings[id]
		if !ok {
			return notFound("booking")
		}
		b, err := reconstruct(snap)
		if err != nil {
			return err
		}
		view = queries.NewBookingView(b)
		return nil
	})
	return view, err
}

func (r *BookingReadStore) FindByRenter(ctx context.Context, renterID uuid.UUID, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	return r.find(ctx, func(s booking.Snapshot) bool { return s.RenterID == renterID }, status, after, limit)
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	return r.find(ctx, func(s booking.Snapshot) bool { return s.OwnerID == ownerID }, status, after, limit)
}

func (r *BookingReadStore) find(ctx context.Context, match func(booking.Snapshot) bool, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	err := r.s.view(ctx, func(st *state) error {
		for _, snap := range st.bookings {
			if !match(snap) {
				continue
			}
			b, err := reconstruct(snap)
			if err != nil {
				return err
			}
			if status != nil && b.Status() != *status {
				continue
			}
			views = append(views, queries.NewBookingView(b))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pageDesc(views, after, limit, func(v *queries.BookingView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }), nil
}

// pageDesc orders by (created_at, id) descending and applies the keyset.
func pageDesc[T any](rows []T, after *queries.Keyset, limit int32, key func(T) (time.Time, uuid.UUID)) []T {
	sort.Slice(rows, func(i, j int) bool {
		ti, ii := key(rows[i])
		tj, ij := key(rows[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii.String() > ij.String()
	})

	out := make([]T, 0, limit)
	for _, row := range rows {
		if after != nil {
			t, id := key(row)
			t = t.Truncate(time.Microsecond)
			if t.After(after.CreatedAt) || (t.Equal(after.CreatedAt) && id.String() >= after.ID.String()) {
				continue
			}
		}
		out = append(out, row)
		if int32(len(out)) == limit {
			break
		}
	}
	return out
}

// AvailabilityReadStore implements queries.AvailabilityReadStore.
type AvailabilityReadStore struct {
	s *Store
}

func NewAvailabilityReadStore(s *Store) *AvailabilityReadStore {
	return &AvailabilityReadStore{s: s}
}

func (r *AvailabilityReadStore) VehicleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.s.view(ctx, func(st *state) error {
		_, ok = st.vehicles[id]
		return nil
	})
	return ok, err
}

func (r *AvailabilityReadStore) FindDays(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]availability.Day, error) {
	var days []availability.Day
	err := r.s.view(ctx, func(st *state) error {
		days = listDays(st, vehicleID, rg)
		return nil
	})
	return days, err
}

func (r *AvailabilityReadStore) FindActiveBookings(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]queries.BookedRange, error) {
	var out []queries.BookedRange
	err := r.s.view(ctx, func(st *state) error {
		for _, snap := range activeOverlapping(st, vehicleID, rg, uuid.Nil) {
			status := snap.Status
			if status == "" {
				status = booking.StatusPending.String()
			}
			out = append(out, queries.BookedRange{
				BookingID: snap.ID,
				StartDate: snap.StartDate,
				EndDate:   snap.EndDate,
				Status:    status,
			})
		}
		return nil
	})
	return out, err
}

// EarningsReadStore implements queries.EarningsReadStore.
type EarningsReadStore struct {
	s *Store
}

func NewEarningsReadStore(s *Store) *EarningsReadStore {
	return &EarningsReadStore{s: s}
}

func (r *EarningsReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.EarningsView, error) {
	var views []*queries.EarningsView
	err := r.s.view(ctx, func(st *state) error {
		for _, row := range st.earnings {
			if row.OwnerID != ownerID {
				continue
			}
			views = append(views, &queries.EarningsView{
				ID:           row.ID,
				BookingID:    row.BookingID,
				VehicleID:    row.VehicleID,
				OwnerID:      row.OwnerID,
				TripStart:    row.TripStart,
				TripEnd:      row.TripEnd,
				TripDays:     row.TripDays,
				Gross:        row.Gross,
				Fee:          row.Fee,
				Net:          row.Net,
				PayoutStatus: row.PayoutStatus,
				CreatedAt:    row.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pageDesc(views, after, limit, func(v *queries.EarningsView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }), nil
}

func (r *EarningsReadStore) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*queries.EarningsSummary, error) {
	sum := &queries.EarningsSummary{OwnerID: ownerID}
	err := r.s.view(ctx, func(st *state) error {
		for _, row := range st.earnings {
			if row.OwnerID != ownerID {
				continue
			}
			sum.Settlements++
			sum.Gross += row.Gross
			sum.Fee += row.Fee
			sum.Net += row.Net
			if row.PayoutStatus == "pending" {
				sum.PendingPayout += row.Net
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// JobStore implements relay.JobStore over the in-memory outbox.
type JobStore struct {
	s *Store
}

func NewJobStore(s *Store) *JobStore {
	return &JobStore{s: s}
}

func (j *JobStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]relay.Job, error) {
	var claimed []relay.Job
	err := j.s.view(ctx, func(st *state) error {
		for i := range st.jobs {
			if len(claimed) == limit {
				break
			}
			job := &st.jobs[i]
			if job.Status != relay.StatusQueued || job.RunAt.After(now) {
				continue
			}
			job.Status = relay.StatusProcessing
			job.UpdatedAt = now
			claimed = append(claimed, relay.Job{
				ID:       job.ID,
				Kind:     job.Kind,
				Topic:    job.Topic,
				Payload:  append([]byte(nil), job.Payload...),
				RunAt:    job.RunAt,
				Attempts: job.Attempts,
			})
		}
		return nil
	})
	return claimed, err
}

func (j *JobStore) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return j.update(ctx, id, func(job *jobRow) {
		job.Status = relay.StatusSent
		job.UpdatedAt = at
	})
}

func (j *JobStore) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, final bool) error {
	return j.update(ctx, id, func(job *jobRow) {
		job.Attempts++
		job.LastError = lastError
		job.Status = relay.StatusQueued
		job.RunAt = retryAt
		if final {
			job.Status = relay.StatusFailed
		}
	})
}

func (j *JobStore) update(ctx context.Context, id uuid.UUID, fn func(job *jobRow)) error {
	return j.s.view(ctx, func(st *state) error {
		for i := range st.jobs {
			if st.jobs[i].ID == id {
				fn(&st.jobs[i])
				return nil
			}
		}
		return notFound("outbox job")
	})
}
