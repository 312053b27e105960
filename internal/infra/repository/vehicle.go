package repository

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	selectVehicleSQL = `
SELECT id, owner_id, price_per_day, category, is_active
FROM vehicles
WHERE id = $1`

	lockVehicleSQL = selectVehicleSQL + `
FOR UPDATE`

	upsertVehicleSQL = `
INSERT INTO vehicles (id, owner_id, price_per_day, category, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (id) DO UPDATE SET
    owner_id      = EXCLUDED.owner_id,
    price_per_day = EXCLUDED.price_per_day,
    category      = EXCLUDED.category,
    is_active     = EXCLUDED.is_active,
    updated_at    = EXCLUDED.updated_at`
)

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(dbtx db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: dbtx}
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Spec, error) {
	return r.find(ctx, selectVehicleSQL, id)
}

// LockByID takes the row lock every writer of the vehicle's bookings and ledger
// days queues on. It waits at most the transaction's lock_timeout.
func (r *VehicleRepository) LockByID(ctx context.Context, id uuid.UUID) (*vehicle.Spec, error) {
	return r.find(ctx, lockVehicleSQL, id)
}

func (r *VehicleRepository) find(ctx context.Context, query string, id uuid.UUID) (*vehicle.Spec, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle", err)
	}
	return v, nil
}

func (r *VehicleRepository) Upsert(ctx context.Context, v vehicle.Spec, at time.Time) error {
	_, err := r.db.Exec(ctx, upsertVehicleSQL,
		v.ID, v.OwnerID, v.PricePerDay.Minor(), v.Category, v.IsActive, at)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert vehicle", err)
	}
	return nil
}

func scanVehicle(row pgx.Row) (*vehicle.Spec, error) {
	var (
		v     vehicle.Spec
		price int64
	)
	if err := row.Scan(&v.ID, &v.OwnerID, &price, &v.Category, &v.IsActive); err != nil {
		return nil, err
	}
	v.PricePerDay = money.FromMinor(price)
	return &v, nil
}
