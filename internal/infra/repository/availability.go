package repository

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	selectDaysInRangeSQL = `
SELECT` + converter.DayColumns + `
FROM availability_days d
WHERE d.vehicle_id = $1
  AND d.date BETWEEN $2::date AND $3::date
ORDER BY d.date`

	// One row per day of the range. Unchanged rows keep their updated_at so a
	// repeated mark is a no-op.
	markRangeSQL = `
INSERT INTO availability_days (
    vehicle_id, owner_id, date, is_available, reason, custom_reason, booking_id, created_at, updated_at
)
SELECT $1, $2, gs::date, $5, $6, $7, $8, $9, $9
FROM generate_series($3::date, $4::date, interval '1 day') AS gs
ON CONFLICT (vehicle_id, date) DO UPDATE SET
    owner_id      = EXCLUDED.owner_id,
    is_available  = EXCLUDED.is_available,
    reason        = EXCLUDED.reason,
    custom_reason = EXCLUDED.custom_reason,
    booking_id    = EXCLUDED.booking_id,
    updated_at    = EXCLUDED.updated_at
WHERE (availability_days.owner_id, availability_days.is_available, availability_days.reason,
       availability_days.custom_reason, availability_days.booking_id)
      IS DISTINCT FROM
      (EXCLUDED.owner_id, EXCLUDED.is_available, EXCLUDED.reason,
       EXCLUDED.custom_reason, EXCLUDED.booking_id)`

	releaseBookingDaysSQL = `
UPDATE availability_days SET
    is_available  = TRUE,
    reason        = 'personal_use',
    custom_reason = NULL,
    booking_id    = NULL,
    updated_at    = $2
WHERE booking_id = $1`
)

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx}
}

func (r *AvailabilityRepository) ListRange(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]availability.Day, error) {
	rows, err := r.db.Query(ctx, selectDaysInRangeSQL,
		vehicleID, pgconv.DateToPgtype(rg.Start()), pgconv.DateToPgtype(rg.End()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability days", err)
	}
	days, err := converter.ScanDays(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan availability days", err)
	}
	return days, nil
}

func (r *AvailabilityRepository) MarkRange(ctx context.Context, m availability.Mark, at time.Time) error {
	_, err := r.db.Exec(ctx, markRangeSQL,
		m.VehicleID,
		m.OwnerID,
		pgconv.DateToPgtype(m.Range.Start()),
		pgconv.DateToPgtype(m.Range.End()),
		m.IsAvailable,
		m.Reason.String(),
		pgconv.OptionalStringToPgtype(m.CustomReason),
		pgconv.UUIDPtrToPgtype(m.BookingID),
		at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark availability range", err)
	}
	return nil
}

func (r *AvailabilityRepository) ReleaseBooking(ctx context.Context, bookingID uuid.UUID, at time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, releaseBookingDaysSQL, bookingID, at)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release booked days", err)
	}
	return int(tag.RowsAffected()), nil
}
