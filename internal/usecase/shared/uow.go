package shared

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/domain/vehicle"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one write transaction; retryable serialization failures are retried.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Vehicles() VehicleRepository
	Bookings() BookingRepository
	Ledger() LedgerRepository
	Earnings() EarningsRepository
	Outbox() OutboxRepository
}

type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Spec, error)
	// LockByID holds the vehicle row until the transaction ends. It serializes
	// every writer of that vehicle's bookings and ledger days.
	LockByID(ctx context.Context, id uuid.UUID) (*vehicle.Spec, error)
	Upsert(ctx context.Context, v vehicle.Spec, at time.Time) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindActiveOverlapping returns bookings of the vehicle whose status holds
	// dates and whose range intersects r.
	FindActiveOverlapping(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) ([]*booking.Booking, error)
}

type LedgerRepository interface {
	ListRange(ctx context.Context, vehicleID uuid.UUID, r availability.DateRange) ([]availability.Day, error)
	// MarkRange upserts one record per day of the mark.
	MarkRange(ctx context.Context, m availability.Mark, at time.Time) error
	// ReleaseBooking reopens the days committed by bookingID and returns how many changed.
	ReleaseBooking(ctx context.Context, bookingID uuid.UUID, at time.Time) (int, error)
}

type EarningsRepository interface {
	Create(ctx context.Context, e *earnings.Earnings) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*earnings.Earnings, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, job OutboxJob) error
}

const (
	JobKindBookingEvent = "booking_event"
	JobKindAdminNotice  = "admin_notice"

	TopicAdminNotifications = "admin.notifications"
)

// OutboxJob is a message written in the same transaction as the state change it describes.
type OutboxJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}
