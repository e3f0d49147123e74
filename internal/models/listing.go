package models

import (
	"time"

	"github.com/google/uuid"
)

/*──────────────────────────────────────────────────────────────────────────────
  Primary enums
──────────────────────────────────────────────────────────────────────────────*/
type ListingType string

const (
	ListingTypeEntireProperty ListingType = "ENTIRE_PROPERTY"
	ListingTypeUnit           ListingType = "UNIT"
)

type ListingStatusType string

const (
	ListingStatusDraft    ListingStatusType = "DRAFT"
	ListingStatusActive   ListingStatusType = "ACTIVE"
	ListingStatusPaused   ListingStatusType = "PAUSED"
	ListingStatusExpired  ListingStatusType = "EXPIRED"
	ListingStatusArchived ListingStatusType = "ARCHIVED"
	ListingStatusRemoved  ListingStatusType = "REMOVED"
)

type OccupancyType string

const (
	OccupancyVacant            OccupancyType = "VACANT"
	OccupancyOccupied          OccupancyType = "OCCUPIED"
	OccupancyPartiallyOccupied OccupancyType = "PARTIALLY_OCCUPIED"
)

type VisibilityType string

const (
	VisibilityPublic   VisibilityType = "PUBLIC"
	VisibilityPrivate  VisibilityType = "PRIVATE"
	VisibilityUnlisted VisibilityType = "UNLISTED"
)

// Listing is a public-facing advertisement derived from a property
// (and optionally a specific unit) with its own pricing overrides.
type Listing struct {
	ID          uuid.UUID         `json:"id"`
	PropertyID  uuid.UUID         `json:"property_id"`
	UnitID      *uuid.UUID        `json:"unit_id,omitempty"`
	ListingType ListingType       `json:"listing_type"`
	Status      ListingStatusType `json:"status"`
	Occupancy   OccupancyType     `json:"occupancy"`
	Visibility  VisibilityType    `json:"visibility"`
	IsActive    bool              `json:"is_active"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	MonthlyRent      float64    `json:"monthly_rent"`
	SecurityDeposit  *float64   `json:"security_deposit,omitempty"`
	AmountRefundable *float64   `json:"amount_refundable,omitempty"`
	LeaseDurationMin *int       `json:"lease_duration_min,omitempty"`
	LeaseDurationMax *int       `json:"lease_duration_max,omitempty"`
	AvailableFrom    *time.Time `json:"available_from,omitempty"`
	PetsAllowed      *bool      `json:"pets_allowed,omitempty"`
	ApplicationFee   *float64   `json:"application_fee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
