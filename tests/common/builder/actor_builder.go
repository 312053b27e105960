//go:build unit || e2e

package builder

import (
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

func Renter(id uuid.UUID) shared.Actor {
	return shared.Actor{UserID: id, Role: user.RoleRenter}
}

func Owner(id uuid.UUID) shared.Actor {
	return shared.Actor{UserID: id, Role: user.RoleOwner}
}

func Admin() shared.Actor {
	return shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
}
