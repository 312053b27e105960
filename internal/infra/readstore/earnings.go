package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	listEarningsByOwnerSQL = `
SELECT id, booking_id, vehicle_id, owner_id, trip_start_date, trip_end_date, trip_days,
       gross_amount, fee_amount, net_amount, payout_status, created_at
FROM earnings
WHERE owner_id = $1
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4`

	summarizeEarningsByOwnerSQL = `
SELECT
    COUNT(*),
    COALESCE(SUM(gross_amount), 0)::bigint,
    COALESCE(SUM(fee_amount), 0)::bigint,
    COALESCE(SUM(net_amount), 0)::bigint,
    COALESCE(SUM(net_amount) FILTER (WHERE payout_status = 'pending'), 0)::bigint
FROM earnings
WHERE owner_id = $1`
)

type EarningsReadStore struct {
	db db.DBTX
}

func NewEarningsReadStore(dbtx db.DBTX) *EarningsReadStore {
	return &EarningsReadStore{db: dbtx}
}

func (r *EarningsReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.EarningsView, error) {
	afterAt, afterID := keysetArgs(after)
	rows, err := r.db.Query(ctx, listEarningsByOwnerSQL, ownerID, afterAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list earnings", err)
	}
	defer rows.Close()

	var result []*queries.EarningsView
	for rows.Next() {
		var (
			v                  queries.EarningsView
			tripStart, tripEnd pgtype.Date
		)
		if err := rows.Scan(&v.ID, &v.BookingID, &v.VehicleID, &v.OwnerID, &tripStart, &tripEnd, &v.TripDays,
			&v.Gross, &v.Fee, &v.Net, &v.PayoutStatus, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan earnings", err)
		}
		v.TripStart = pgconv.DateFromPgtype(tripStart)
		v.TripEnd = pgconv.DateFromPgtype(tripEnd)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate earnings", err)
	}
	return result, nil
}

func (r *EarningsReadStore) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*queries.EarningsSummary, error) {
	sum := &queries.EarningsSummary{OwnerID: ownerID}
	var settlements int64
	err := r.db.QueryRow(ctx, summarizeEarningsByOwnerSQL, ownerID).
		Scan(&settlements, &sum.Gross, &sum.Fee, &sum.Net, &sum.PendingPayout)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize earnings", err)
	}
	sum.Settlements = int(settlements)
	return sum, nil
}
