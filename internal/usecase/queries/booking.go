package queries

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock vehicle-rental/internal/usecase/queries BookingQueries,AvailabilityQueries,EarningsQueries

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrAccessDenied    = errs.Mark(errs.New("access denied"), errs.ErrUnauthorized)
	ErrInvalidCursor   = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)
	ErrInvalidStatus   = errs.Mark(errs.New("invalid status filter"), errs.ErrValidation)
)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	RenterID           uuid.UUID  `json:"renter_id"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	VehicleID          uuid.UUID  `json:"vehicle_id"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	TotalDays          int        `json:"total_days"`
	PricePerDay        int64      `json:"price_per_day"`
	TotalAmount        int64      `json:"total_amount"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	PaymentID          *string    `json:"payment_id,omitempty"`
	PickupLocation     string     `json:"pickup_location"`
	DropoffLocation    string     `json:"dropoff_location"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

// NewBookingView renders an aggregate. Read stores go through booking.Reconstruct
// so legacy rows are normalized the same way on both sides.
func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:                 b.ID(),
		RenterID:           b.RenterID(),
		OwnerID:            b.OwnerID(),
		VehicleID:          b.VehicleID(),
		StartDate:          b.Period().Start(),
		EndDate:            b.Period().End(),
		TotalDays:          b.TotalDays(),
		PricePerDay:        b.PricePerDay().Minor(),
		TotalAmount:        b.TotalAmount().Minor(),
		Status:             b.Status().String(),
		PaymentStatus:      b.PaymentStatus().String(),
		PaymentID:          b.PaymentID(),
		PickupLocation:     b.PickupLocation(),
		DropoffLocation:    b.DropoffLocation(),
		CancellationReason: b.CancellationReason(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
		AcceptedAt:         b.AcceptedAt(),
		StartedAt:          b.StartedAt(),
		CompletedAt:        b.CompletedAt(),
		CancelledAt:        b.CancelledAt(),
	}
}

type BookingFilter struct {
	Status string
	Cursor *Cursor
	Limit  int
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRenter(ctx context.Context, renterID uuid.UUID, status *booking.Status, after *Keyset, limit int32) ([]*BookingView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, status *booking.Status, after *Keyset, limit int32) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, actor shared.Actor, renterID uuid.UUID, f BookingFilter) ([]*BookingView, *Cursor, error)
	ListByOwner(ctx context.Context, actor shared.Actor, ownerID uuid.UUID, f BookingFilter) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != view.RenterID && actor.UserID != view.OwnerID {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, actor shared.Actor, renterID uuid.UUID, f BookingFilter) ([]*BookingView, *Cursor, error) {
	return q.list(ctx, actor, renterID, f, q.store.FindByRenter)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, actor shared.Actor, ownerID uuid.UUID, f BookingFilter) ([]*BookingView, *Cursor, error) {
	return q.list(ctx, actor, ownerID, f, q.store.FindByOwner)
}

type bookingFinder func(ctx context.Context, partyID uuid.UUID, status *booking.Status, after *Keyset, limit int32) ([]*BookingView, error)

func (q *bookingQueriesImpl) list(ctx context.Context, actor shared.Actor, partyID uuid.UUID, f BookingFilter, find bookingFinder) ([]*BookingView, *Cursor, error) {
	if !actor.IsAdmin() && actor.UserID != partyID {
		return nil, nil, ErrAccessDenied
	}

	var status *booking.Status
	if f.Status != "" {
		st, err := booking.ParseStatus(f.Status)
		if err != nil {
			return nil, nil, ErrInvalidStatus
		}
		status = &st
	}

	after, err := decodeCursor(f.Cursor)
	if err != nil {
		return nil, nil, err
	}

	limit := ValidateLimit(f.Limit)
	rows, err := find(ctx, partyID, status, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	views, next := page(rows, limit, func(v *BookingView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return views, next, nil
}
