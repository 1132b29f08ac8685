package common

// SubmitResponse is the single caller-visible outcome of a submission.
// Field carries the name of the offending form field, when there is one,
// so the frontend can highlight it.
type SubmitResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Field   *string `json:"field"`
}

// NewSuccessResponse creates the outcome for an accepted submission
func NewSuccessResponse(message string) SubmitResponse {
	return SubmitResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates the outcome for a rejected submission
func NewErrorResponse(message string) SubmitResponse {
	return SubmitResponse{
		Success: false,
		Message: message,
	}
}

// NewFieldErrorResponse creates the outcome for a rejected submission,
// tagged with the form field that failed validation
func NewFieldErrorResponse(message, field string) SubmitResponse {
	return SubmitResponse{
		Success: false,
		Message: message,
		Field:   &field,
	}
}
