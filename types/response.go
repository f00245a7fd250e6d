package types

import "github.com/eventpulse/feedback-backend/errors"

// DataResponse is the success envelope carrying a message and a payload.
type DataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// MessageResponse is the success envelope with no payload (delete, plain 404).
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the non-validation error envelope: the HTTP reason phrase
// plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the envelope for request-body validation
// failures; Details lists every failing field, not just the first.
type ValidationErrorResponse struct {
	Error   string              `json:"error"`
	Details []errors.FieldError `json:"details"`
}
