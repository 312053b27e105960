package earnings

import (
	"errors"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrBookingNotCompleted = errors.New("earnings can only be recorded for completed bookings")
	ErrInvalidPayoutStatus = errors.New("invalid payout status")
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

func (s PayoutStatus) String() string {
	return string(s)
}

func (s PayoutStatus) IsValid() bool {
	return s == PayoutPending || s == PayoutPaid
}

// Earnings is the settlement of one completed booking. The trip fields copy
// the booking's period so a settlement stays readable on its own.
type Earnings struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	bookingID    uuid.UUID
	vehicleID    uuid.UUID
	tripStart    time.Time
	tripEnd      time.Time
	tripDays     int
	gross        money.Money
	fee          money.Money
	net          money.Money
	payoutStatus PayoutStatus
	createdAt    time.Time
}

func NewFromCompletedBooking(b *booking.Booking, policy FeePolicy, now time.Time) (*Earnings, error) {
	if b.Status() != booking.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}
	gross := b.TotalAmount()
	fee, net := policy.Split(gross)
	return &Earnings{
		id:           uuid.New(),
		ownerID:      b.OwnerID(),
		bookingID:    b.ID(),
		vehicleID:    b.VehicleID(),
		tripStart:    b.Period().Start(),
		tripEnd:      b.Period().End(),
		tripDays:     b.TotalDays(),
		gross:        gross,
		fee:          fee,
		net:          net,
		payoutStatus: PayoutPending,
		createdAt:    now,
	}, nil
}

// Snapshot is the persisted shape of Earnings.
type Snapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	BookingID    uuid.UUID
	VehicleID    uuid.UUID
	TripStart    time.Time
	TripEnd      time.Time
	TripDays     int
	Gross        int64
	Fee          int64
	Net          int64
	PayoutStatus string
	CreatedAt    time.Time
}

func (e *Earnings) Snapshot() Snapshot {
	return Snapshot{
		ID:           e.id,
		OwnerID:      e.ownerID,
		BookingID:    e.bookingID,
		VehicleID:    e.vehicleID,
		TripStart:    e.tripStart,
		TripEnd:      e.tripEnd,
		TripDays:     e.tripDays,
		Gross:        e.gross.Minor(),
		Fee:          e.fee.Minor(),
		Net:          e.net.Minor(),
		PayoutStatus: e.payoutStatus.String(),
		CreatedAt:    e.createdAt,
	}
}

func Reconstruct(s Snapshot) (*Earnings, error) {
	ps := PayoutStatus(s.PayoutStatus)
	if !ps.IsValid() {
		return nil, ErrInvalidPayoutStatus
	}
	return &Earnings{
		id:           s.ID,
		ownerID:      s.OwnerID,
		bookingID:    s.BookingID,
		vehicleID:    s.VehicleID,
		tripStart:    s.TripStart,
		tripEnd:      s.TripEnd,
		tripDays:     s.TripDays,
		gross:        money.FromMinor(s.Gross),
		fee:          money.FromMinor(s.Fee),
		net:          money.FromMinor(s.Net),
		payoutStatus: ps,
		createdAt:    s.CreatedAt,
	}, nil
}

func (e *Earnings) ID() uuid.UUID              { return e.id }
func (e *Earnings) OwnerID() uuid.UUID         { return e.ownerID }
func (e *Earnings) BookingID() uuid.UUID       { return e.bookingID }
func (e *Earnings) VehicleID() uuid.UUID       { return e.vehicleID }
func (e *Earnings) TripStart() time.Time       { return e.tripStart }
func (e *Earnings) TripEnd() time.Time         { return e.tripEnd }
func (e *Earnings) TripDays() int              { return e.tripDays }
func (e *Earnings) Gross() money.Money         { return e.gross }
func (e *Earnings) Fee() money.Money           { return e.fee }
func (e *Earnings) Net() money.Money           { return e.net }
func (e *Earnings) PayoutStatus() PayoutStatus { return e.payoutStatus }
func (e *Earnings) CreatedAt() time.Time       { return e.createdAt }
