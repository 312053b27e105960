package repository

import (
	"context"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertBookingSQL = `
INSERT INTO bookings (
    id, renter_id, owner_id, vehicle_id, start_date, end_date,
    total_days, price_per_day, total_amount, status, payment_status,
    payment_id, pickup_location, dropoff_location, cancellation_reason,
    created_at, updated_at, accepted_at, started_at, completed_at,
    cancelled_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	// Identity, range and price are fixed at creation.
	updateBookingSQL = `
UPDATE bookings SET
    total_days          = $2,
    total_amount        = $3,
    status              = $4,
    payment_status      = $5,
    payment_id          = $6,
    cancellation_reason = $7,
    updated_at          = $8,
    accepted_at         = $9,
    started_at          = $10,
    completed_at        = $11,
    cancelled_at        = $12
WHERE id = $1`

	selectBookingByIDSQL = `
SELECT` + converter.BookingColumns + `
FROM bookings b
WHERE b.id = $1`

	selectActiveOverlappingSQL = `
SELECT` + converter.BookingColumns + `
FROM bookings b
WHERE b.vehicle_id = $1
  AND b.status IN ('pending', 'accepted', 'confirmed', 'in_progress')
  AND daterange(b.start_date, b.end_date, '[]') && daterange($2::date, $3::date, '[]')
ORDER BY b.start_date, b.id`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// Create relies on bookings_no_overlap: a concurrent overlapping insert that got
// past the application check surfaces as KindConflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingInsertArgs(b)...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL, converter.BookingUpdateArgs(b)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, err := converter.ScanBooking(r.db.QueryRow(ctx, selectBookingByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return reconstructBooking(snap)
}

func (r *BookingRepository) FindActiveOverlapping(ctx context.Context, vehicleID uuid.UUID, rg availability.DateRange) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, selectActiveOverlappingSQL,
		vehicleID, pgconv.DateToPgtype(rg.Start()), pgconv.DateToPgtype(rg.End()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		snap, err := converter.ScanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		b, err := reconstructBooking(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func reconstructBooking(snap booking.Snapshot) (*booking.Booking, error) {
	b, err := booking.Reconstruct(snap)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return b, nil
}
