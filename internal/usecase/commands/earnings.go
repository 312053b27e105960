package commands

import (
	"context"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// EarningsRecorder settles completed bookings. The booking id is the
// idempotency key: a second settlement fails with ErrDuplicateSettlement.
type EarningsRecorder struct {
	uow    shared.UnitOfWork
	policy earnings.FeePolicy
	clock  clock.Clock
}

func NewEarningsRecorder(uow shared.UnitOfWork, policy earnings.FeePolicy, clk clock.Clock) *EarningsRecorder {
	return &EarningsRecorder{uow: uow, policy: policy, clock: clk}
}

func (r *EarningsRecorder) RecordCompletion(ctx context.Context, bookingID uuid.UUID) (*earnings.Earnings, error) {
	var recorded *earnings.Earnings
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		recorded, err = r.recordTx(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return recorded, nil
}

func (r *EarningsRecorder) recordTx(ctx context.Context, tx shared.Tx, b *booking.Booking) (*earnings.Earnings, error) {
	existing, err := tx.Earnings().FindByBookingID(ctx, b.ID())
	switch {
	case err == nil && existing != nil:
		return nil, errs.Wrapf(ErrDuplicateSettlement, "booking %s", b.ID())
	case err != nil && !infra.IsKind(err, infra.KindNotFound):
		return nil, err
	}

	e, err := earnings.NewFromCompletedBooking(b, r.policy, r.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := tx.Earnings().Create(ctx, e); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Wrapf(ErrDuplicateSettlement, "booking %s", b.ID())
		}
		return nil, err
	}
	return e, nil
}
