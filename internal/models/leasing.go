package models

import (
	"time"

	"github.com/google/uuid"
)

// Leasing holds the default lease terms attached to a property. New
// listings inherit these values for every field the caller does not
// override explicitly.
type Leasing struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"property_id"`
	MonthlyRent      float64    `json:"monthly_rent"`
	SecurityDeposit  *float64   `json:"security_deposit,omitempty"`
	AmountRefundable *float64   `json:"amount_refundable,omitempty"`
	LeaseDurationMin *int       `json:"lease_duration_min,omitempty"`
	LeaseDurationMax *int       `json:"lease_duration_max,omitempty"`
	AvailableFrom    *time.Time `json:"available_from,omitempty"`
	PetsAllowed      *bool      `json:"pets_allowed,omitempty"`
	ApplicationFee   *float64   `json:"application_fee,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
