package routes

const (
	Health = "/health"

	Listings = "/api/v1/listings"
	Listing  = "/api/v1/listings/{listingID}"

	Tasks = "/api/v1/tasks"
	Task  = "/api/v1/tasks/{taskID}"

	Properties      = "/api/v1/properties"
	Property        = "/api/v1/properties/{propertyID}"
	PropertyLeasing = "/api/v1/properties/{propertyID}/leasing"

	FilesUpload         = "/api/v1/files/upload"
	FilesDelete         = "/api/v1/files/delete"
	FilesPresign        = "/api/v1/files/presign"
	FilesConnectionTest = "/api/v1/files/connection-test"
)
