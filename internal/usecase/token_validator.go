package usecase

import (
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/usecase/shared"

	"github.com/cockroachdb/errors"
)

// TokenValidator turns a bearer token into the actor every command and query
// authorizes against.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (t *jwtTokenValidator) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, errors.Wrapf(jwt.ErrInvalidToken, "role %q", claims.Role)
	}

	return shared.Actor{UserID: claims.UserID, Role: role}, nil
}
