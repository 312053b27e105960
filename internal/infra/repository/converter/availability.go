package converter

import (
	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const DayColumns = `
    d.vehicle_id, d.owner_id, d.date, d.is_available, d.reason,
    d.custom_reason, d.booking_id, d.updated_at`

func ScanDay(row pgx.Row) (availability.Day, error) {
	var (
		d            availability.Day
		date         pgtype.Date
		reason       string
		customReason pgtype.Text
		bookingID    pgtype.UUID
	)
	if err := row.Scan(&d.VehicleID, &d.OwnerID, &date, &d.IsAvailable, &reason,
		&customReason, &bookingID, &d.UpdatedAt); err != nil {
		return availability.Day{}, err
	}
	d.Date = pgconv.DateFromPgtype(date)
	d.Reason = availability.Reason(reason)
	d.CustomReason = pgconv.StringFromPgtype(customReason)
	d.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	return d, nil
}

func ScanDays(rows pgx.Rows) ([]availability.Day, error) {
	defer rows.Close()
	var days []availability.Day
	for rows.Next() {
		d, err := ScanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
