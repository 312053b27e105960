package shared

import (
	"vehicle-rental/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as asserted by the auth service.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}
