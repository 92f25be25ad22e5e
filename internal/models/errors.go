package models

import "fmt"

// Error codes used by handlers when mapping failures to HTTP responses.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeDuplicateSKU       = "DUPLICATE_SKU"
	ErrCodeEmptyOrder         = "EMPTY_ORDER"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodePersistenceFailed  = "PERSISTENCE_FAILED"
)

// DomainError is a typed business-rule failure. Handlers translate these
// into status codes; services never deal in HTTP.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is lets errors.Is match any wrapped DomainError against its sentinel
// by code, so services can wrap with fmt.Errorf("...: %w", err).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel domain errors.
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "order not found")
	ErrDuplicateSKU       = NewDomainError(ErrCodeDuplicateSKU, "product with this SKU already exists")
	ErrEmptyOrder         = NewDomainError(ErrCodeEmptyOrder, "order must contain at least one item")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "product service unavailable or product not found")
	ErrPersistenceFailed  = NewDomainError(ErrCodePersistenceFailed, "failed to persist order")
)

// ValidationError wraps malformed or incomplete input.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}
