package dto

// ErrorResponse is the error envelope of every failed request. Error keeps
// the human-readable message clients already display.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// SuccessResponse acknowledges an operation that returns no entity
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
