package vehicle

import (
	"errors"
	"strings"

	"vehicle-rental/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrMissingIDs      = errors.New("vehicle and owner ids are required")
	ErrInvalidPrice    = errors.New("price per day must be positive")
	ErrCategoryTooLong = errors.New("category is too long (max 50 characters)")
)

const MaxCategoryLength = 50

// Spec is the slice of the vehicle catalog the booking core depends on.
type Spec struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	PricePerDay money.Money
	Category    string
	IsActive    bool
}

// NewSpec validates a catalog record pushed to this service.
func NewSpec(id, ownerID uuid.UUID, pricePerDayMinor int64, category string, isActive bool) (Spec, error) {
	if id == uuid.Nil || ownerID == uuid.Nil {
		return Spec{}, ErrMissingIDs
	}
	if pricePerDayMinor <= 0 {
		return Spec{}, ErrInvalidPrice
	}
	category = strings.TrimSpace(category)
	if len(category) > MaxCategoryLength {
		return Spec{}, ErrCategoryTooLong
	}
	return Spec{
		ID:          id,
		OwnerID:     ownerID,
		PricePerDay: money.FromMinor(pricePerDayMinor),
		Category:    category,
		IsActive:    isActive,
	}, nil
}
