package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrBadRequest       = errors.New("bad request")
	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrAlreadyPaid      = errors.New("invoice already paid")
	ErrNotPayable       = errors.New("invoice is not payable")
	ErrPaymentConflict  = errors.New("invoice settled by another payment")
	ErrOrderInProgress  = errors.New("order creation already in progress")
	ErrConfiguration    = errors.New("payment gateway not configured")
	ErrGateway          = errors.New("payment gateway error")
)

// GatewayError reports a failed call to the external payment gateway.
type GatewayError struct {
	Op          string
	Status      int
	Description string
	Err         error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s failed", e.Op)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.Status)
	}
	if e.Description != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Description)
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is matches ErrGateway so callers can branch without type assertions.
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}
