package readstore

import (
	"context"
	"fmt"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectBookingViewSQL = `
SELECT` + converter.BookingColumns + `
FROM bookings b
WHERE b.id = $1`

	// %s is the participant column. A NULL status or keyset disables that filter.
	listBookingsByParticipantSQL = `
SELECT` + converter.BookingColumns + `
FROM bookings b
WHERE b.%s = $1
  AND ($2::text IS NULL OR b.status = $2)
  AND ($3::timestamptz IS NULL OR (b.created_at, b.id) < ($3, $4::uuid))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $5`
)

var (
	listBookingsByRenterSQL = fmt.Sprintf(listBookingsByParticipantSQL, "renter_id")
	listBookingsByOwnerSQL  = fmt.Sprintf(listBookingsByParticipantSQL, "owner_id")
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	snap, err := converter.ScanBooking(r.db.QueryRow(ctx, selectBookingViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return toBookingView(snap)
}

func (r *BookingReadStore) FindByRenter(ctx context.Context, renterID uuid.UUID, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	return r.list(ctx, listBookingsByRenterSQL, renterID, status, after, limit)
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	return r.list(ctx, listBookingsByOwnerSQL, ownerID, status, after, limit)
}

func (r *BookingReadStore) list(ctx context.Context, query string, participantID uuid.UUID, status *booking.Status, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	statusArg := pgtype.Text{}
	if status != nil {
		statusArg = pgtype.Text{String: status.String(), Valid: true}
	}
	afterAt, afterID := keysetArgs(after)

	rows, err := r.db.Query(ctx, query, participantID, statusArg, afterAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		snap, err := converter.ScanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		view, err := toBookingView(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

// Views go through booking.Reconstruct so legacy rows read the same on both sides.
func toBookingView(snap booking.Snapshot) (*queries.BookingView, error) {
	b, err := booking.Reconstruct(snap)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return queries.NewBookingView(b), nil
}

func keysetArgs(after *queries.Keyset) (pgtype.Timestamptz, pgtype.UUID) {
	if after == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}
	}
	return pgtype.Timestamptz{Time: after.CreatedAt, Valid: true}, pgtype.UUID{Bytes: after.ID, Valid: true}
}
