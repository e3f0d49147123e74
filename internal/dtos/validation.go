package dtos

// ValidationErrorDetail is returned per failing field on 400 responses.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
