package dtos

import (
	"time"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type CreateUnitInput struct {
	UnitNumber string `json:"unit_number" validate:"required,max=20"`
	Bedrooms   int    `json:"bedrooms" validate:"min=0"`
	Bathrooms  int    `json:"bathrooms" validate:"min=0"`
	SquareFeet *int   `json:"square_feet,omitempty"`
}

type CreatePropertyRequest struct {
	PropertyName string              `json:"property_name" validate:"required,max=200"`
	Address      string              `json:"address" validate:"required"`
	City         string              `json:"city" validate:"required"`
	State        string              `json:"state" validate:"required"`
	ZipCode      string              `json:"zip_code" validate:"required"`
	PropertyType models.PropertyType `json:"property_type" validate:"required,oneof=SINGLE MULTI"`
	Units        []CreateUnitInput   `json:"units,omitempty" validate:"dive"`
	Amenities    []string            `json:"amenities,omitempty"`
}

// UpsertLeasingRequest sets or replaces a property's default lease
// terms. Nullable fields accept explicit null to clear a stored value.
type UpsertLeasingRequest struct {
	MonthlyRent      float64             `json:"monthly_rent" validate:"required,gt=0"`
	SecurityDeposit  Optional[float64]   `json:"security_deposit"`
	AmountRefundable Optional[float64]   `json:"amount_refundable"`
	LeaseDurationMin Optional[int]       `json:"lease_duration_min"`
	LeaseDurationMax Optional[int]       `json:"lease_duration_max"`
	AvailableFrom    Optional[time.Time] `json:"available_from"`
	PetsAllowed      Optional[bool]      `json:"pets_allowed"`
	ApplicationFee   Optional[float64]   `json:"application_fee"`
}

type ListPropertiesResponse struct {
	Results []*models.Property `json:"results"`
	Total   int                `json:"total"`
}
