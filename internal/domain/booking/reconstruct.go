package booking

import (
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/money"

	"github.com/google/uuid"
)

// Snapshot is the persisted shape of a Booking.
type Snapshot struct {
	ID                 uuid.UUID
	RenterID           uuid.UUID
	OwnerID            uuid.UUID
	VehicleID          uuid.UUID
	StartDate          time.Time
	EndDate            time.Time
	TotalDays          int
	PricePerDayMinor   int64
	TotalAmountMinor   int64
	Status             string
	PaymentStatus      string
	PaymentID          *string
	PickupLocation     string
	DropoffLocation    string
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AcceptedAt         *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		RenterID:           b.renterID,
		OwnerID:            b.ownerID,
		VehicleID:          b.vehicleID,
		StartDate:          b.period.Start(),
		EndDate:            b.period.End(),
		TotalDays:          b.totalDays,
		PricePerDayMinor:   b.pricePerDay.Minor(),
		TotalAmountMinor:   b.totalAmount.Minor(),
		Status:             b.status.String(),
		PaymentStatus:      b.paymentStatus.String(),
		PaymentID:          copyString(b.paymentID),
		PickupLocation:     b.pickupLocation,
		DropoffLocation:    b.dropoffLocation,
		CancellationReason: b.cancellationReason,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
		AcceptedAt:         copyTime(b.acceptedAt),
		StartedAt:          copyTime(b.startedAt),
		CompletedAt:        copyTime(b.completedAt),
		CancelledAt:        copyTime(b.cancelledAt),
	}
}

// Reconstruct rebuilds a Booking from storage. Rows written before payment
// tracking and amount denormalization existed are normalized here and nowhere else.
func Reconstruct(s Snapshot) (*Booking, error) {
	period, err := availability.NewDateRange(s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}

	status := Status(s.Status)
	if s.Status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	paymentStatus := PaymentStatus(s.PaymentStatus)
	if !paymentStatus.IsValid() {
		paymentStatus = PaymentPending
		if s.PaymentID != nil && *s.PaymentID != "" {
			paymentStatus = PaymentPaid
		}
	}

	totalDays := s.TotalDays
	if totalDays <= 0 {
		totalDays = period.Days()
	}

	pricePerDay := money.FromMinor(s.PricePerDayMinor)
	totalAmount := money.FromMinor(s.TotalAmountMinor)
	if totalAmount.IsZero() {
		totalAmount = pricePerDay.Multiply(totalDays)
	}

	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.CreatedAt
	}

	return &Booking{
		id:                 s.ID,
		renterID:           s.RenterID,
		ownerID:            s.OwnerID,
		vehicleID:          s.VehicleID,
		period:             period,
		totalDays:          totalDays,
		pricePerDay:        pricePerDay,
		totalAmount:        totalAmount,
		status:             status,
		paymentStatus:      paymentStatus,
		paymentID:          copyString(s.PaymentID),
		pickupLocation:     s.PickupLocation,
		dropoffLocation:    s.DropoffLocation,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          updatedAt,
		acceptedAt:         copyTime(s.AcceptedAt),
		startedAt:          copyTime(s.StartedAt),
		completedAt:        copyTime(s.CompletedAt),
		cancelledAt:        copyTime(s.CancelledAt),
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
