package readstore

import (
	"context"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	vehicleExistsSQL = `SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = $1)`

	selectCalendarDaysSQL = `
SELECT` + converter.DayColumns + `
FROM availability_days d
WHERE d.vehicle_id = $1
  AND d.date BETWEEN $2::date AND $3::date
ORDER BY d.date`

	selectActiveBookedRangesSQL = `
SELECT id, start_date, end_date, status
FROM bookings
WHERE vehicle_id = $1
  AND status IN ('pending', 'accepted', 'confirmed', 'in_progress')
  AND daterange(start_date, end_date, '[]') && daterange($2::date, $3::date, '[]')
ORDER BY start_date, id`
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (r *AvailabilityReadStore) VehicleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, vehicleExistsSQL, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check vehicle", err)
	}
	return exists, nil
}

func (r *AvailabilityReadStore) FindDays(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]availability.Day, error) {
	rows, err := r.db.Query(ctx, selectCalendarDaysSQL,
		vehicleID, pgconv.DateToPgtype(rg.Start()), pgconv.DateToPgtype(rg.End()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability days", err)
	}
	days, err := converter.ScanDays(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan availability days", err)
	}
	return days, nil
}

func (r *AvailabilityReadStore) FindActiveBookings(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]queries.BookedRange, error) {
	rows, err := r.db.Query(ctx, selectActiveBookedRangesSQL,
		vehicleID, pgconv.DateToPgtype(rg.Start()), pgconv.DateToPgtype(rg.End()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active bookings", err)
	}
	defer rows.Close()

	var result []queries.BookedRange
	for rows.Next() {
		var (
			br         queries.BookedRange
			start, end pgtype.Date
		)
		if err := rows.Scan(&br.BookingID, &start, &end, &br.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		br.StartDate = pgconv.DateFromPgtype(start)
		br.EndDate = pgconv.DateFromPgtype(end)
		result = append(result, br)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked ranges", err)
	}
	return result, nil
}
