package request

import (
	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type SetAvailabilityRequest struct {
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	IsAvailable  *bool  `json:"is_available" binding:"required"`
	Reason       string `json:"reason" binding:"required,oneof=personal_use maintenance other"`
	CustomReason string `json:"custom_reason" binding:"max=255"`
}

func (r *SetAvailabilityRequest) ToInput(vehicleID uuid.UUID) (commands.SetAvailabilityInput, error) {
	rng, err := ParseRange(r.StartDate, r.EndDate)
	if err != nil {
		return commands.SetAvailabilityInput{}, err
	}
	return commands.SetAvailabilityInput{
		VehicleID:    vehicleID,
		Range:        rng,
		IsAvailable:  *r.IsAvailable,
		Reason:       availability.Reason(r.Reason),
		CustomReason: r.CustomReason,
	}, nil
}

type AvailabilityQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func (q *AvailabilityQuery) ToRange() (availability.DateRange, error) {
	return ParseRange(q.From, q.To)
}

func ParseRange(from, to string) (availability.DateRange, error) {
	start, err := ParseDate("start", from)
	if err != nil {
		return availability.DateRange{}, err
	}
	end, err := ParseDate("end", to)
	if err != nil {
		return availability.DateRange{}, err
	}
	return availability.NewDateRange(start, end)
}
