package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is an independently leasable space inside a MULTI property.
// SINGLE properties have no explicit units.
type Unit struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
	Bedrooms   int       `json:"bedrooms"`
	Bathrooms  int       `json:"bathrooms"`
	SquareFeet *int      `json:"square_feet,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
