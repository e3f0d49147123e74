package models

import (
	"time"

	"github.com/google/uuid"
)

/*──────────────────────────────────────────────────────────────────────────────
  Primary enums
──────────────────────────────────────────────────────────────────────────────*/
type PropertyType string

const (
	PropertyTypeSingle PropertyType = "SINGLE"
	PropertyTypeMulti  PropertyType = "MULTI"
)

type PropertyStatusType string

const (
	PropertyStatusPending  PropertyStatusType = "PENDING"
	PropertyStatusActive   PropertyStatusType = "ACTIVE"
	PropertyStatusInactive PropertyStatusType = "INACTIVE"
)

type Property struct {
	ID           uuid.UUID          `json:"id"`
	ManagerID    uuid.UUID          `json:"manager_id"`
	PropertyName string             `json:"property_name"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	State        string             `json:"state"`
	ZipCode      string             `json:"zip_code"`
	PropertyType PropertyType       `json:"property_type"`
	Status       PropertyStatusType `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	// Relations, populated on demand by the service layer.
	Units     []*Unit    `json:"units,omitempty"`
	Leasing   *Leasing   `json:"leasing,omitempty"`
	Amenities []*Amenity `json:"amenities,omitempty"`
}
