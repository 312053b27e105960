package converter

import (
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list ScanBooking expects.
const BookingColumns = `
    b.id, b.renter_id, b.owner_id, b.vehicle_id, b.start_date, b.end_date,
    b.total_days, b.price_per_day, b.total_amount, b.status, b.payment_status,
    b.payment_id, b.pickup_location, b.dropoff_location, b.cancellation_reason,
    b.created_at, b.updated_at, b.accepted_at, b.started_at, b.completed_at,
    b.cancelled_at`

// ScanBooking reads a row in BookingColumns order. Nullable legacy columns come
// back as zero values and are normalized by booking.Reconstruct.
func ScanBooking(row pgx.Row) (booking.Snapshot, error) {
	var (
		s             booking.Snapshot
		start, end    pgtype.Date
		totalDays     pgtype.Int4
		totalAmount   pgtype.Int8
		paymentStatus pgtype.Text
		paymentID     pgtype.Text
		cancelReason  pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
		acceptedAt    pgtype.Timestamptz
		startedAt     pgtype.Timestamptz
		completedAt   pgtype.Timestamptz
		cancelledAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&s.ID, &s.RenterID, &s.OwnerID, &s.VehicleID, &start, &end,
		&totalDays, &s.PricePerDayMinor, &totalAmount, &s.Status, &paymentStatus,
		&paymentID, &s.PickupLocation, &s.DropoffLocation, &cancelReason,
		&createdAt, &updatedAt, &acceptedAt, &startedAt, &completedAt,
		&cancelledAt,
	)
	if err != nil {
		return booking.Snapshot{}, err
	}

	s.StartDate = pgconv.DateFromPgtype(start)
	s.EndDate = pgconv.DateFromPgtype(end)
	if totalDays.Valid {
		s.TotalDays = int(totalDays.Int32)
	}
	if totalAmount.Valid {
		s.TotalAmountMinor = totalAmount.Int64
	}
	s.PaymentStatus = pgconv.StringFromPgtype(paymentStatus)
	s.PaymentID = pgconv.StringPtrFromPgtype(paymentID)
	s.CancellationReason = pgconv.StringFromPgtype(cancelReason)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	s.AcceptedAt = pgconv.TimePtrFromPgtype(acceptedAt)
	s.StartedAt = pgconv.TimePtrFromPgtype(startedAt)
	s.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)

	return s, nil
}

// BookingInsertArgs returns the arguments of the booking insert statement.
func BookingInsertArgs(b *booking.Booking) []any {
	s := b.Snapshot()
	// #nosec G115 -- a date range never spans more than int32 days
	totalDays := int32(s.TotalDays)
	return []any{
		s.ID,
		s.RenterID,
		s.OwnerID,
		s.VehicleID,
		pgconv.DateToPgtype(s.StartDate),
		pgconv.DateToPgtype(s.EndDate),
		totalDays,
		s.PricePerDayMinor,
		s.TotalAmountMinor,
		s.Status,
		s.PaymentStatus,
		pgconv.StringPtrToPgtype(s.PaymentID),
		s.PickupLocation,
		s.DropoffLocation,
		pgconv.OptionalStringToPgtype(s.CancellationReason),
		s.CreatedAt,
		s.UpdatedAt,
		pgconv.TimePtrToPgtype(s.AcceptedAt),
		pgconv.TimePtrToPgtype(s.StartedAt),
		pgconv.TimePtrToPgtype(s.CompletedAt),
		pgconv.TimePtrToPgtype(s.CancelledAt),
	}
}

// BookingUpdateArgs returns the arguments of the booking update statement.
func BookingUpdateArgs(b *booking.Booking) []any {
	s := b.Snapshot()
	// #nosec G115 -- a date range never spans more than int32 days
	totalDays := int32(s.TotalDays)
	return []any{
		s.ID,
		totalDays,
		s.TotalAmountMinor,
		s.Status,
		s.PaymentStatus,
		pgconv.StringPtrToPgtype(s.PaymentID),
		pgconv.OptionalStringToPgtype(s.CancellationReason),
		s.UpdatedAt,
		pgconv.TimePtrToPgtype(s.AcceptedAt),
		pgconv.TimePtrToPgtype(s.StartedAt),
		pgconv.TimePtrToPgtype(s.CompletedAt),
		pgconv.TimePtrToPgtype(s.CancelledAt),
	}
}
