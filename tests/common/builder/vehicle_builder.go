//go:build unit || e2e

package builder

import (
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	PricePerDay int64
	Category    string
	IsActive    bool
}

// NewVehicleBuilder defaults to an active car at 500.00 per day.
func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		PricePerDay: 50000,
		Category:    "car",
		IsActive:    true,
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

func (v *VehicleBuilder) WithOwnerID(ownerID uuid.UUID) *VehicleBuilder {
	v.OwnerID = ownerID
	return v
}

func (v *VehicleBuilder) WithPricePerDay(minor int64) *VehicleBuilder {
	v.PricePerDay = minor
	return v
}

func (v *VehicleBuilder) Inactive() *VehicleBuilder {
	v.IsActive = false
	return v
}

func (v *VehicleBuilder) BuildDomain() (vehicle.Spec, error) {
	return vehicle.NewSpec(v.ID, v.OwnerID, v.PricePerDay, v.Category, v.IsActive)
}

func (v *VehicleBuilder) BuildSyncInput() commands.SyncVehicleInput {
	return commands.SyncVehicleInput{
		VehicleID:        v.ID,
		OwnerID:          v.OwnerID,
		PricePerDayMinor: v.PricePerDay,
		Category:         v.Category,
		IsActive:         v.IsActive,
	}
}
