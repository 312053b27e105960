package booking

import (
	"errors"
	"strings"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus         = errors.New("invalid booking status")
	ErrStartInPast           = errors.New("start date cannot be in the past")
	ErrVehicleInactive       = errors.New("vehicle is not accepting bookings")
	ErrSelfBooking           = errors.New("owners cannot book their own vehicle")
	ErrNonPositivePrice      = errors.New("price per day must be positive")
	ErrLocationTooLong       = errors.New("location is too long (max 500 characters)")
	ErrPaymentIDRequired     = errors.New("payment id is required")
	ErrPaymentIDMismatch     = errors.New("booking already paid with a different payment id")
	ErrPaymentAmountMismatch = errors.New("paid amount does not match the booking total")
	ErrCancelReasonTooLong   = errors.New("cancellation reason is too long (max 500 characters)")
	ErrMissingParticipantIDs = errors.New("renter and vehicle ids are required")
	ErrBookingTooLong        = errors.New("booking may span at most 366 days")
)

const (
	MaxTextLength = 500
	// MaxBookingDays keeps a booking within one ledger write.
	MaxBookingDays = availability.MaxRangeDays
)

type Services struct {
	Clock clock.Clock
}

type Booking struct {
	id                 uuid.UUID
	renterID           uuid.UUID
	ownerID            uuid.UUID
	vehicleID          uuid.UUID
	period             availability.DateRange
	totalDays          int
	pricePerDay        money.Money
	totalAmount        money.Money
	status             Status
	paymentStatus      PaymentStatus
	paymentID          *string
	pickupLocation     string
	dropoffLocation    string
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time
	acceptedAt         *time.Time
	startedAt          *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
}

func NewBooking(
	services *Services,
	v vehicle.Spec,
	renterID uuid.UUID,
	period availability.DateRange,
	pickupLocation, dropoffLocation string,
) (*Booking, error) {
	if renterID == uuid.Nil || v.ID == uuid.Nil {
		return nil, ErrMissingParticipantIDs
	}
	if period.IsZero() {
		return nil, availability.ErrInvalidRange
	}
	if period.Days() > MaxBookingDays {
		return nil, ErrBookingTooLong
	}
	if !v.IsActive {
		return nil, ErrVehicleInactive
	}
	if v.OwnerID == renterID {
		return nil, ErrSelfBooking
	}
	if v.PricePerDay.Minor() <= 0 {
		return nil, ErrNonPositivePrice
	}
	if period.Start().Before(clock.Today(services.Clock)) {
		return nil, ErrStartInPast
	}

	pickupLocation = strings.TrimSpace(pickupLocation)
	dropoffLocation = strings.TrimSpace(dropoffLocation)
	if len(pickupLocation) > MaxTextLength || len(dropoffLocation) > MaxTextLength {
		return nil, ErrLocationTooLong
	}

	now := services.Clock.Now()
	days := period.Days()
	return &Booking{
		id:              uuid.New(),
		renterID:        renterID,
		ownerID:         v.OwnerID,
		vehicleID:       v.ID,
		period:          period,
		totalDays:       days,
		pricePerDay:     v.PricePerDay,
		totalAmount:     v.PricePerDay.Multiply(days),
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		pickupLocation:  pickupLocation,
		dropoffLocation: dropoffLocation,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func (b *Booking) transition(action Action, now time.Time) error {
	next, err := NextStatus(b.status, action)
	if err != nil {
		return err
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Accept(now time.Time) error {
	if err := b.transition(ActionAccept, now); err != nil {
		return err
	}
	b.acceptedAt = &now
	return nil
}

func (b *Booking) Reject(now time.Time) error {
	return b.transition(ActionReject, now)
}

func (b *Booking) Start(now time.Time) error {
	if err := b.transition(ActionStart, now); err != nil {
		return err
	}
	b.startedAt = &now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if err := b.transition(ActionComplete, now); err != nil {
		return err
	}
	b.completedAt = &now
	return nil
}

func (b *Booking) Cancel(now time.Time, reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxTextLength {
		return ErrCancelReasonTooLong
	}
	if err := b.transition(ActionCancel, now); err != nil {
		return err
	}
	b.cancelledAt = &now
	b.cancellationReason = reason
	return nil
}

// ConfirmPayment is idempotent for the payment id that already settled the booking.
// It reports whether anything changed.
func (b *Booking) ConfirmPayment(paymentID string, amount money.Money, now time.Time) (bool, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return false, ErrPaymentIDRequired
	}
	if amount.Minor() != b.totalAmount.Minor() {
		return false, ErrPaymentAmountMismatch
	}
	if b.paymentStatus == PaymentPaid && b.paymentID != nil {
		if *b.paymentID == paymentID {
			return false, nil
		}
		return false, ErrPaymentIDMismatch
	}
	if err := b.transition(ActionConfirmPayment, now); err != nil {
		return false, err
	}
	b.paymentStatus = PaymentPaid
	b.paymentID = &paymentID
	return true, nil
}

func (b *Booking) Apply(action Action, now time.Time) error {
	switch action {
	case ActionAccept:
		return b.Accept(now)
	case ActionReject:
		return b.Reject(now)
	case ActionStart:
		return b.Start(now)
	case ActionComplete:
		return b.Complete(now)
	case ActionCancel:
		return b.Cancel(now, "")
	default:
		return &TransitionError{From: b.status, Action: action}
	}
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID == b.renterID || userID == b.ownerID
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) RenterID() uuid.UUID            { return b.renterID }
func (b *Booking) OwnerID() uuid.UUID             { return b.ownerID }
func (b *Booking) VehicleID() uuid.UUID           { return b.vehicleID }
func (b *Booking) Period() availability.DateRange { return b.period }
func (b *Booking) TotalDays() int                 { return b.totalDays }
func (b *Booking) PricePerDay() money.Money       { return b.pricePerDay }
func (b *Booking) TotalAmount() money.Money       { return b.totalAmount }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus   { return b.paymentStatus }
func (b *Booking) PaymentID() *string             { return b.paymentID }
func (b *Booking) PickupLocation() string         { return b.pickupLocation }
func (b *Booking) DropoffLocation() string        { return b.dropoffLocation }
func (b *Booking) CancellationReason() string     { return b.cancellationReason }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }
func (b *Booking) AcceptedAt() *time.Time         { return b.acceptedAt }
func (b *Booking) StartedAt() *time.Time          { return b.startedAt }
func (b *Booking) CompletedAt() *time.Time        { return b.completedAt }
func (b *Booking) CancelledAt() *time.Time        { return b.cancelledAt }
