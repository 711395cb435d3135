package types

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Type    string `json:"type" example:"VALIDATION_ERROR"`
	Message string `json:"message" example:"Rating must be between 1 and 5."`
	Code    string `json:"code" example:"422"`
	Details string `json:"details,omitempty"`
}
