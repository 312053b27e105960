package commands

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock vehicle-rental/internal/usecase/commands BookingCommands,AvailabilityCommands,CatalogCommands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	VehicleID       uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	PickupLocation  string
	DropoffLocation string
}

type BookingCommands interface {
	CreateBookingRequest(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error)
	// TransitionBookingStatus drives accept, reject and start.
	TransitionBookingStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, action booking.Action) (*booking.Booking, error)
	CancelBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error)
	CompleteBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentID string, amount money.Money) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	coord    *ReservationCoordinator
	recorder *EarningsRecorder
	clock    clock.Clock
	release  shared.RetryPolicy
}

func NewBookingUseCase(
	coord *ReservationCoordinator,
	recorder *EarningsRecorder,
	clk clock.Clock,
	release shared.RetryPolicy,
) BookingCommands {
	return &bookingUseCaseImpl{
		coord:    coord,
		recorder: recorder,
		clock:    clk,
		release:  release,
	}
}

func (uc *bookingUseCaseImpl) CreateBookingRequest(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error) {
	r, err := availability.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, classify(err)
	}

	_, b, err := uc.coord.Reserve(ctx, ReserveInput{
		VehicleID:       in.VehicleID,
		RenterID:        actor.UserID,
		Range:           r,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking requested",
		"booking_id", b.ID(),
		"vehicle_id", b.VehicleID(),
		"range", b.Period().String())
	return b, nil
}

func (uc *bookingUseCaseImpl) TransitionBookingStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, action booking.Action) (*booking.Booking, error) {
	switch action {
	case booking.ActionAccept, booking.ActionReject, booking.ActionStart:
	default:
		return nil, ErrUnsupportedAction
	}

	return uc.mutate(ctx, actor, bookingID, action, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		if err := b.Apply(action, now); err != nil {
			return err
		}
		if action == booking.ActionAccept {
			return uc.coord.commitTx(ctx, tx, b)
		}
		return nil
	})
}

// CancelBooking commits the status change first and then releases ledger days
// with bounded retries. A release that keeps failing is logged and handed to
// the admin notification channel; the cancellation itself still succeeds.
func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	var committed bool
	b, err := uc.mutate(ctx, actor, bookingID, booking.ActionCancel, func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) error {
		committed = b.Status().LedgerCommitted()
		return b.Cancel(now, reason)
	})
	if err != nil {
		return nil, err
	}

	if committed {
		uc.releaseAfterCancel(ctx, b)
	}
	return b, nil
}

func (uc *bookingUseCaseImpl) releaseAfterCancel(ctx context.Context, b *booking.Booking) {
	// The caller's cancellation already succeeded; a disconnect must not abort cleanup.
	ctx = context.WithoutCancel(ctx)

	err := shared.Retry(ctx, uc.release, "release ledger days", func(ctx context.Context) error {
		_, rerr := uc.coord.Release(ctx, b.ID())
		return rerr
	})
	if err == nil {
		return
	}

	slog.Error("ledger release failed, manual reconciliation required",
		"booking_id", b.ID(),
		"vehicle_id", b.VehicleID(),
		"range", b.Period().String(),
		"error", err.Error())

	if nerr := uc.notifyAdmins(ctx, b, err); nerr != nil {
		slog.Error("failed to enqueue admin notice",
			"booking_id", b.ID(),
			"error", nerr.Error())
	}
}

type adminNotice struct {
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	Range     string    `json:"range"`
	Error     string    `json:"error"`
	At        time.Time `json:"at"`
}

func (uc *bookingUseCaseImpl) notifyAdmins(ctx context.Context, b *booking.Booking, cause error) error {
	now := uc.clock.Now()
	payload, err := json.Marshal(adminNotice{
		Type:      "ledger_release_failed",
		BookingID: b.ID(),
		VehicleID: b.VehicleID(),
		Range:     b.Period().String(),
		Error:     cause.Error(),
		At:        now,
	})
	if err != nil {
		return err
	}
	return uc.coord.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Enqueue(ctx, shared.OutboxJob{
			Kind:    shared.JobKindAdminNotice,
			Topic:   shared.TopicAdminNotifications,
			Payload: payload,
			RunAt:   now,
		})
	})
}

// CompleteBooking records the settlement in the same transaction as the status change.
func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, actor, bookingID, booking.ActionComplete, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		if err := b.Complete(now); err != nil {
			return err
		}
		_, err := uc.recorder.recordTx(ctx, tx, b)
		return err
	})
}

// ConfirmPayment is driven by the payment gateway, not by a user.
// Replaying the same payment id returns the booking unchanged.
func (uc *bookingUseCaseImpl) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentID string, amount money.Money) (*booking.Booking, error) {
	var result *booking.Booking
	err := uc.coord.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, _, err := loadLocked(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		changed, err := b.ConfirmPayment(paymentID, amount, now)
		if err != nil {
			return err
		}
		result = b
		if !changed {
			return nil
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, b, booking.EventPaymentConfirmed, now)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mutate loads the booking under the vehicle lock, authorizes the actor,
// applies fn, persists the booking and enqueues the transition's event.
func (uc *bookingUseCaseImpl) mutate(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	action booking.Action,
	fn func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error,
) (*booking.Booking, error) {
	var result *booking.Booking
	err := uc.coord.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, _, err := loadLocked(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := authorize(actor, b, action); err != nil {
			return err
		}

		now := uc.clock.Now()
		if err := fn(ctx, tx, b, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		result = b
		return enqueueEvent(ctx, tx, b, booking.EventTypeFor(action), now)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking transitioned",
		"booking_id", result.ID(),
		"action", action.String(),
		"status", result.Status().String(),
		"actor_id", actor.UserID)
	return result, nil
}

// authorize: owners drive the lifecycle, either party may cancel, admins may do anything.
func authorize(actor shared.Actor, b *booking.Booking, action booking.Action) error {
	if actor.IsAdmin() {
		return nil
	}
	switch action {
	case booking.ActionAccept, booking.ActionReject, booking.ActionStart, booking.ActionComplete:
		if actor.UserID == b.OwnerID() {
			return nil
		}
	case booking.ActionCancel:
		if b.IsParticipant(actor.UserID) {
			return nil
		}
	}
	return errs.Wrapf(ErrNotPermitted, "%s booking %s", action, b.ID())
}
