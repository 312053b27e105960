//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	reqdto "vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder describes a booking request; BuildDomain needs a vehicle
// because price and owner come from the catalog.
type BookingBuilder struct {
	Vehicle         *VehicleBuilder
	RenterID        uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	PickupLocation  string
	DropoffLocation string
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Vehicle:         NewVehicleBuilder(),
		RenterID:        uuid.New(),
		StartDate:       Date(2024, 5, 10),
		EndDate:         Date(2024, 5, 12),
		PickupLocation:  "MG Road, Bengaluru",
		DropoffLocation: "MG Road, Bengaluru",
		Now:             Date(2024, 4, 30).Add(9 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithVehicle(v *VehicleBuilder) *BookingBuilder {
	b.Vehicle = v
	return b
}

func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.RenterID = id
	return b
}

func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) Range() (availability.DateRange, error) {
	return availability.NewDateRange(b.StartDate, b.EndDate)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	v, err := b.Vehicle.BuildDomain()
	if err != nil {
		return nil, err
	}
	r, err := b.Range()
	if err != nil {
		return nil, err
	}
	services := &booking.Services{Clock: clock.NewMockClock(b.Now)}
	return booking.NewBooking(services, v, b.RenterID, r, b.PickupLocation, b.DropoffLocation)
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		VehicleID:       b.Vehicle.ID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID:       b.Vehicle.ID,
		StartDate:       b.StartDate.Format(time.DateOnly),
		EndDate:         b.EndDate.Format(time.DateOnly),
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
	}
}

// BuildView panics on invalid builder state; views are only needed by handler tests.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewBookingView(bk)
}

// BuildSnapshot returns a stored row as an older schema version would have
// written it when legacy is set: no payment status, no day count, no total.
func (b *BookingBuilder) BuildSnapshot(status booking.Status, legacy bool) booking.Snapshot {
	v := b.Vehicle
	s := booking.Snapshot{
		ID:               uuid.New(),
		RenterID:         b.RenterID,
		OwnerID:          v.OwnerID,
		VehicleID:        v.ID,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		PricePerDayMinor: v.PricePerDay,
		Status:           status.String(),
		PickupLocation:   b.PickupLocation,
		DropoffLocation:  b.DropoffLocation,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
	if !legacy {
		r, _ := b.Range()
		s.TotalDays = r.Days()
		s.TotalAmountMinor = v.PricePerDay * int64(r.Days())
		s.PaymentStatus = booking.PaymentPending.String()
	}
	return s
}

// Date is midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
