package commands

import (
	"context"

	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type SyncVehicleInput struct {
	VehicleID        uuid.UUID
	OwnerID          uuid.UUID
	PricePerDayMinor int64
	Category         string
	IsActive         bool
}

// CatalogCommands receives vehicle updates pushed by the catalog service.
type CatalogCommands interface {
	SyncVehicle(ctx context.Context, actor shared.Actor, in SyncVehicleInput) (*vehicle.Spec, error)
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, clock: clk}
}

func (uc *catalogUseCaseImpl) SyncVehicle(ctx context.Context, actor shared.Actor, in SyncVehicleInput) (*vehicle.Spec, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotPermitted
	}
	spec, err := vehicle.NewSpec(in.VehicleID, in.OwnerID, in.PricePerDayMinor, in.Category, in.IsActive)
	if err != nil {
		return nil, classify(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Upsert(ctx, spec, uc.clock.Now())
	})
	if err != nil {
		return nil, classify(err)
	}
	return &spec, nil
}
