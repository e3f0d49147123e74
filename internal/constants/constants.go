package constants

import "time"

// Upload categories
const (
	CategoryImage    = "IMAGE"
	CategoryVideo    = "VIDEO"
	CategoryDocument = "DOCUMENT"
)

// AllowedMimeTypes is the per-category content allow-list. A declared
// type outside the list is rejected before any call to the object
// store.
var AllowedMimeTypes = map[string][]string{
	CategoryImage: {
		"image/jpeg",
		"image/png",
		"image/webp",
		"image/gif",
	},
	CategoryVideo: {
		"video/mp4",
		"video/quicktime",
		"video/webm",
	},
	CategoryDocument: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
		"text/csv",
	},
}

// Key derivation
const (
	MaxBaseNameLength = 50
	KeyRandomHexLen   = 8
)

// Presigned URLs
const (
	DefaultPresignDuration = 15 * time.Minute
)

// Upload limits
const (
	MaxUploadSizeBytes = 100 << 20 // 100 MiB
)
