package request

import (
	"vehicle-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

// SyncVehicleRequest is pushed by the catalog service whenever a listing changes.
type SyncVehicleRequest struct {
	OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	PricePerDay int64     `json:"price_per_day" binding:"required,gt=0"`
	Category    string    `json:"category" binding:"max=50"`
	IsActive    *bool     `json:"is_active" binding:"required"`
}

func (r *SyncVehicleRequest) ToInput(vehicleID uuid.UUID) commands.SyncVehicleInput {
	return commands.SyncVehicleInput{
		VehicleID:        vehicleID,
		OwnerID:          r.OwnerID,
		PricePerDayMinor: r.PricePerDay,
		Category:         r.Category,
		IsActive:         *r.IsActive,
	}
}
