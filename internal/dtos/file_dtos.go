package dtos

type UploadFileResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type DeleteFileRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type DeleteFileResponse struct {
	Message string `json:"message"`
}

type PresignRequest struct {
	URL            string `json:"url" validate:"required,url"`
	DurationMinute int    `json:"duration_minutes" validate:"omitempty,min=1,max=10080"`
}

type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
	ExpiresIn    int    `json:"expires_in_seconds"`
}

type ConnectionTestResponse struct {
	Status      string `json:"status"`
	Bucket      string `json:"bucket"`
	Region      string `json:"region"`
	BucketCount int    `json:"bucket_count"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
