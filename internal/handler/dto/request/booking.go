package request

import (
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VehicleID       uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate       string    `json:"start_date" binding:"required"`
	EndDate         string    `json:"end_date" binding:"required"`
	PickupLocation  string    `json:"pickup_location" binding:"max=500"`
	DropoffLocation string    `json:"dropoff_location" binding:"max=500"`
}

func (r *CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	start, err := ParseDate("start_date", r.StartDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	end, err := ParseDate("end_date", r.EndDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	// inverted ranges are reported by the use case
	if period, err := availability.NewDateRange(start, end); err == nil && period.Days() > booking.MaxBookingDays {
		return commands.CreateBookingInput{}, errs.Newf("a booking may span at most %d days", booking.MaxBookingDays)
	}
	return commands.CreateBookingInput{
		VehicleID:       r.VehicleID,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
	}, nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ParseDate accepts calendar dates only (YYYY-MM-DD), interpreted in UTC.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errs.Newf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}
