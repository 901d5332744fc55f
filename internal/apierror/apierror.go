// Package apierror defines the JSON envelopes for every 4xx/5xx response.
// Handlers never serialize raw errors to clients; internal detail (driver
// errors, stack traces) stays in the logs.
package apierror

// APIError carries a single human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries one message per offending field, keyed by the
// field's JSON name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
