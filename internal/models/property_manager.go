package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyManager struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}
