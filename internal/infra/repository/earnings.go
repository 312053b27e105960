package repository

import (
	"context"

	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertEarningsSQL = `
INSERT INTO earnings (id, owner_id, booking_id, vehicle_id, trip_start_date, trip_end_date, trip_days,
                      gross_amount, fee_amount, net_amount, payout_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	selectEarningsByBookingSQL = `
SELECT id, owner_id, booking_id, vehicle_id, trip_start_date, trip_end_date, trip_days,
       gross_amount, fee_amount, net_amount, payout_status, created_at
FROM earnings
WHERE booking_id = $1`
)

type EarningsRepository struct {
	db db.DBTX
}

func NewEarningsRepository(dbtx db.DBTX) *EarningsRepository {
	return &EarningsRepository{db: dbtx}
}

// Create surfaces a second settlement for the same booking as KindDuplicateKey.
func (r *EarningsRepository) Create(ctx context.Context, e *earnings.Earnings) error {
	snap := e.Snapshot()
	_, err := r.db.Exec(ctx, insertEarningsSQL,
		snap.ID,
		snap.OwnerID,
		snap.BookingID,
		snap.VehicleID,
		pgconv.DateToPgtype(snap.TripStart),
		pgconv.DateToPgtype(snap.TripEnd),
		snap.TripDays,
		snap.Gross,
		snap.Fee,
		snap.Net,
		snap.PayoutStatus,
		snap.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create earnings", err)
	}
	return nil
}

func (r *EarningsRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*earnings.Earnings, error) {
	var (
		snap               earnings.Snapshot
		tripStart, tripEnd pgtype.Date
	)
	err := r.db.QueryRow(ctx, selectEarningsByBookingSQL, bookingID).
		Scan(&snap.ID, &snap.OwnerID, &snap.BookingID, &snap.VehicleID, &tripStart, &tripEnd, &snap.TripDays,
			&snap.Gross, &snap.Fee, &snap.Net, &snap.PayoutStatus, &snap.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("earnings not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find earnings", err)
	}
	snap.TripStart = pgconv.DateFromPgtype(tripStart)
	snap.TripEnd = pgconv.DateFromPgtype(tripEnd)

	e, err := earnings.Reconstruct(snap)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct earnings", err)
	}
	return e, nil
}
