package services

import "storefront/models"

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Rejection is a structured business rejection: a stable code, a
// human message and optional field-level detail. Nothing was
// persisted when a Rejection is returned.
type Rejection struct {
	StatusCode int                 `json:"-"`
	Code       models.RejectionCode `json:"code"`
	Message    string              `json:"message"`
	Errors     []models.FieldError `json:"errors,omitempty"`
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(status int, code models.RejectionCode, message string) *Rejection {
	return &Rejection{StatusCode: status, Code: code, Message: message}
}
