package response

import (
	"vehicle-rental/internal/domain/vehicle"
)

type VehicleResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	PricePerDay int64  `json:"price_per_day"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

func FromVehicle(v *vehicle.Spec) *VehicleResponse {
	return &VehicleResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		PricePerDay: v.PricePerDay.Minor(),
		Category:    v.Category,
		IsActive:    v.IsActive,
	}
}
