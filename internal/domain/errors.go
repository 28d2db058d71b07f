package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthorized    = errors.New("authentication required")
)

// ValidationError rejects malformed input before anything is persisted or charged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type GatewayErrorKind string

const (
	// GatewayAmbiguous marks outcomes where the remote may or may not have
	// processed the charge (timeouts). Never resolved to success locally and
	// never retried automatically.
	GatewayAmbiguous   GatewayErrorKind = "ambiguous"
	GatewayDeclined    GatewayErrorKind = "declined"
	GatewayUnavailable GatewayErrorKind = "unavailable"
)

// GatewayError is a typed failure from the payment processor boundary.
type GatewayError struct {
	Kind   GatewayErrorKind
	Reason string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s: %s", e.Kind, e.Reason)
}

func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
