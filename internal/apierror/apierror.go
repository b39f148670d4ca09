// Package apierror holds the response envelopes for 4xx/5xx answers. Every
// client-facing error passes through here; the costeo error taxonomy is
// translated to these shapes in the handlers so gorm/redis internals never
// reach a response body.
package apierror

// APIError is the single-message envelope for all error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field binding failures (field → failed tag).
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
