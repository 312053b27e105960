package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound     = errs.Mark(errs.New("vehicle not found"), errs.ErrNotFound)
	ErrBookingNotFound     = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrNotPermitted        = errs.Mark(errs.New("actor is not permitted to perform this action"), errs.ErrUnauthorized)
	ErrReservedReason      = errs.Mark(errs.New("booked days can only be written by the booking flow"), errs.ErrValidation)
	ErrBookingStillActive  = errs.Mark(errs.New("booking still holds its dates"), errs.ErrConflict)
	ErrDuplicateSettlement = errs.Mark(errs.New("earnings already recorded for booking"), errs.ErrDuplicateSettlement)
	ErrReservationTimeout  = errs.Mark(errs.New("reservation did not complete within the time limit"), errs.ErrTimeout)
	ErrPaymentMismatch     = errs.Mark(errs.New("payment does not match booking"), errs.ErrConflict)
	ErrDatabaseOperation   = errs.Mark(errs.New("database operation failed"), errs.ErrDatabaseOperationFailed)
	ErrReservationConflict = errs.Mark(errs.New("date range is not available"), errs.ErrConflict)
	ErrUnsupportedAction   = errs.Mark(errs.New("unsupported action for this operation"), errs.ErrValidation)
)

// ConflictError reports why a date range could not be reserved.
type ConflictError struct {
	VehicleID           uuid.UUID
	Range               availability.DateRange
	BlockedDates        []time.Time
	ConflictingBookings []uuid.UUID
}

func (e *ConflictError) Error() string {
	dates := make([]string, len(e.BlockedDates))
	for i, d := range e.BlockedDates {
		dates[i] = d.Format(time.DateOnly)
	}
	return fmt.Sprintf("vehicle %s is not available for %s (blocked: %s)", e.VehicleID, e.Range, strings.Join(dates, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrReservationConflict
}

var validationErrors = []error{
	availability.ErrInvalidRange,
	availability.ErrInvalidReason,
	availability.ErrCustomReasonTooLong,
	availability.ErrBookedNeedsBooking,
	availability.ErrRangeTooLong,
	booking.ErrInvalidStatus,
	booking.ErrStartInPast,
	booking.ErrVehicleInactive,
	booking.ErrSelfBooking,
	booking.ErrNonPositivePrice,
	booking.ErrLocationTooLong,
	booking.ErrPaymentIDRequired,
	booking.ErrCancelReasonTooLong,
	booking.ErrMissingParticipantIDs,
	booking.ErrBookingTooLong,
	earnings.ErrInvalidFeeRate,
	money.ErrNegativeAmount,
	user.ErrInvalidRole,
	vehicle.ErrMissingIDs,
	vehicle.ErrInvalidPrice,
	vehicle.ErrCategoryTooLong,
}

// classify marks domain and repository errors with their category. Errors that
// already carry a category pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, category := range []error{
		errs.ErrValidation, errs.ErrNotFound, errs.ErrConflict, errs.ErrInvalidTransition,
		errs.ErrUnauthorized, errs.ErrDuplicateSettlement, errs.ErrTimeout,
		errs.ErrDatabaseOperationFailed,
	} {
		if errs.Is(err, category) {
			return err
		}
	}

	var transitionErr *booking.TransitionError
	switch {
	case errs.As(err, &transitionErr):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, earnings.ErrBookingNotCompleted):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, booking.ErrPaymentIDMismatch), errors.Is(err, booking.ErrPaymentAmountMismatch):
		return errs.Mark(err, ErrPaymentMismatch)
	case errors.Is(err, context.DeadlineExceeded), infra.IsKind(err, infra.KindTimeout):
		return errs.Mark(err, ErrReservationTimeout)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrReservationConflict)
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return errs.Mark(err, errs.ErrValidation)
		}
	}
	return errs.Mark(err, ErrDatabaseOperation)
}
