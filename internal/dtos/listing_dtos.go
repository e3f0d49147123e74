package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

/*
CreateListingRequest is the payload for POST /api/v1/listings.

Every pricing/terms field is an Optional: absent inherits from the
property's leasing defaults, explicit null stores null, explicit value
overrides. MonthlyRent cannot be nulled (a listing always has a rent),
so an explicit null there is rejected by the service.
*/
type CreateListingRequest struct {
	PropertyID  uuid.UUID                    `json:"property_id" validate:"required"`
	UnitID      *uuid.UUID                   `json:"unit_id,omitempty"`
	ListingType Optional[models.ListingType] `json:"listing_type"`

	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`

	Status     Optional[models.ListingStatusType] `json:"status"`
	Occupancy  Optional[models.OccupancyType]     `json:"occupancy"`
	Visibility Optional[models.VisibilityType]    `json:"visibility"`
	IsActive   Optional[bool]                     `json:"is_active"`

	MonthlyRent      Optional[float64]   `json:"monthly_rent"`
	SecurityDeposit  Optional[float64]   `json:"security_deposit"`
	AmountRefundable Optional[float64]   `json:"amount_refundable"`
	LeaseDurationMin Optional[int]       `json:"lease_duration_min"`
	LeaseDurationMax Optional[int]       `json:"lease_duration_max"`
	AvailableFrom    Optional[time.Time] `json:"available_from"`
	PetsAllowed      Optional[bool]      `json:"pets_allowed"`
	ApplicationFee   Optional[float64]   `json:"application_fee"`
}

// UpdateListingRequest applies only the fields the caller sent.
type UpdateListingRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`

	Status     Optional[models.ListingStatusType] `json:"status"`
	Occupancy  Optional[models.OccupancyType]     `json:"occupancy"`
	Visibility Optional[models.VisibilityType]    `json:"visibility"`
	IsActive   Optional[bool]                     `json:"is_active"`

	MonthlyRent      Optional[float64]   `json:"monthly_rent"`
	SecurityDeposit  Optional[float64]   `json:"security_deposit"`
	AmountRefundable Optional[float64]   `json:"amount_refundable"`
	LeaseDurationMin Optional[int]       `json:"lease_duration_min"`
	LeaseDurationMax Optional[int]       `json:"lease_duration_max"`
	AvailableFrom    Optional[time.Time] `json:"available_from"`
	PetsAllowed      Optional[bool]      `json:"pets_allowed"`
	ApplicationFee   Optional[float64]   `json:"application_fee"`
}

/*
ListingDTO is the response shape for a single listing, with its
property, unit and amenity relations eager-loaded.
*/
type ListingDTO struct {
	Listing   *models.Listing   `json:"listing"`
	Property  *models.Property  `json:"property,omitempty"`
	Unit      *models.Unit      `json:"unit,omitempty"`
	Amenities []*models.Amenity `json:"amenities,omitempty"`
}

type ListListingsResponse struct {
	Results []ListingDTO `json:"results"`
	Total   int          `json:"total"`
}

// DeleteListingResponse returns the deleted record alongside a
// confirmation message.
type DeleteListingResponse struct {
	Message string          `json:"message"`
	Deleted *models.Listing `json:"deleted"`
}
