package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a document stored in the object store and referenced
// by a property (leases, inspection reports, etc).
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// PropertyPhoto is an image stored in the object store, ordered by
// Position within its property's gallery.
type PropertyPhoto struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	URL        string    `json:"url"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
