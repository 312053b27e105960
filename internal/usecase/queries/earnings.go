package queries

import (
	"context"
	"time"

	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type EarningsView struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	TripStart    time.Time `json:"trip_start_date"`
	TripEnd      time.Time `json:"trip_end_date"`
	TripDays     int       `json:"trip_days"`
	Gross        int64     `json:"gross_amount"`
	Fee          int64     `json:"platform_fee"`
	Net          int64     `json:"net_amount"`
	PayoutStatus string    `json:"payout_status"`
	CreatedAt    time.Time `json:"created_at"`
}

type EarningsSummary struct {
	OwnerID       uuid.UUID `json:"owner_id"`
	Settlements   int       `json:"settlements"`
	Gross         int64     `json:"gross_amount"`
	Fee           int64     `json:"platform_fee"`
	Net           int64     `json:"net_amount"`
	PendingPayout int64     `json:"pending_payout"`
}

type EarningsReadStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID, after *Keyset, limit int32) ([]*EarningsView, error)
	SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*EarningsSummary, error)
}

type EarningsQueries interface {
	ListByOwner(ctx context.Context, actor shared.Actor, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*EarningsView, *Cursor, error)
	Summary(ctx context.Context, actor shared.Actor, ownerID uuid.UUID) (*EarningsSummary, error)
}

type earningsQueriesImpl struct {
	store EarningsReadStore
}

func NewEarningsQueries(store EarningsReadStore) EarningsQueries {
	return &earningsQueriesImpl{store: store}
}

func (q *earningsQueriesImpl) ListByOwner(ctx context.Context, actor shared.Actor, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*EarningsView, *Cursor, error) {
	if !actor.IsAdmin() && actor.UserID != ownerID {
		return nil, nil, ErrAccessDenied
	}
	after, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.store.FindByOwner(ctx, ownerID, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	views, next := page(rows, limit, func(v *EarningsView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return views, next, nil
}

func (q *earningsQueriesImpl) Summary(ctx context.Context, actor shared.Actor, ownerID uuid.UUID) (*EarningsSummary, error) {
	if !actor.IsAdmin() && actor.UserID != ownerID {
		return nil, ErrAccessDenied
	}
	return q.store.SummaryByOwner(ctx, ownerID)
}
