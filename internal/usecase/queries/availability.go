package queries

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxCalendarDays caps a single calendar read.
const MaxCalendarDays = 366

var (
	ErrVehicleNotFound  = errs.Mark(errs.New("vehicle not found"), errs.ErrNotFound)
	ErrCalendarTooLarge = errs.Mark(errs.Newf("calendar range exceeds %d days", MaxCalendarDays), errs.ErrValidation)
)

type DayView struct {
	Date         time.Time  `json:"date"`
	IsAvailable  bool       `json:"is_available"`
	Reason       string     `json:"reason"`
	CustomReason string     `json:"custom_reason,omitempty"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
}

// BookedRange is an active booking as seen by the calendar.
type BookedRange struct {
	BookingID uuid.UUID `json:"booking_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

type CalendarView struct {
	VehicleID uuid.UUID     `json:"vehicle_id"`
	From      time.Time     `json:"from"`
	To        time.Time     `json:"to"`
	Days      []DayView     `json:"days"`
	Bookings  []BookedRange `json:"bookings"`
}

type RangeAvailabilityView struct {
	VehicleID           uuid.UUID   `json:"vehicle_id"`
	From                time.Time   `json:"from"`
	To                  time.Time   `json:"to"`
	Free                bool        `json:"free"`
	BlockedDates        []time.Time `json:"blocked_dates"`
	ConflictingBookings []uuid.UUID `json:"conflicting_bookings"`
}

type AvailabilityReadStore interface {
	VehicleExists(ctx context.Context, id uuid.UUID) (bool, error)
	FindDays(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) ([]availability.Day, error)
	FindActiveBookings(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) ([]BookedRange, error)
}

type AvailabilityQueries interface {
	Calendar(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) (*CalendarView, error)
	IsRangeFree(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) (*RangeAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

func (q *availabilityQueriesImpl) Calendar(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) (*CalendarView, error) {
	if r.Days() > MaxCalendarDays {
		return nil, ErrCalendarTooLarge
	}
	if err := q.ensureVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	days, err := q.store.FindDays(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}
	bookings, err := q.store.FindActiveBookings(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}

	view := &CalendarView{
		VehicleID: vehicleID,
		From:      r.Start(),
		To:        r.End(),
		Days:      make([]DayView, 0, len(days)),
		Bookings:  bookings,
	}
	for _, d := range days {
		view.Days = append(view.Days, DayView{
			Date:         d.Date,
			IsAvailable:  d.IsAvailable,
			Reason:       d.Reason.String(),
			CustomReason: d.CustomReason,
			BookingID:    d.BookingID,
		})
	}
	if view.Bookings == nil {
		view.Bookings = []BookedRange{}
	}
	return view, nil
}

func (q *availabilityQueriesImpl) IsRangeFree(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) (*RangeAvailabilityView, error) {
	if r.Days() > MaxCalendarDays {
		return nil, ErrCalendarTooLarge
	}
	if err := q.ensureVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	days, err := q.store.FindDays(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}
	bookings, err := q.store.FindActiveBookings(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}

	blocked := make(map[time.Time]struct{})
	for _, d := range availability.BlockedDates(days, r) {
		blocked[d] = struct{}{}
	}
	conflicting := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		conflicting = append(conflicting, b.BookingID)
		br, berr := availability.NewDateRange(b.StartDate, b.EndDate)
		if berr != nil {
			continue
		}
		for _, d := range br.Dates() {
			if r.Contains(d) {
				blocked[d] = struct{}{}
			}
		}
	}

	dates := make([]time.Time, 0, len(blocked))
	for _, d := range r.Dates() {
		if _, ok := blocked[d]; ok {
			dates = append(dates, d)
		}
	}

	return &RangeAvailabilityView{
		VehicleID:           vehicleID,
		From:                r.Start(),
		To:                  r.End(),
		Free:                len(dates) == 0,
		BlockedDates:        dates,
		ConflictingBookings: conflicting,
	}, nil
}

func (q *availabilityQueriesImpl) ensureVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	ok, err := q.store.VehicleExists(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVehicleNotFound
	}
	return nil
}
