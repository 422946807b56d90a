package donation

import "errors"

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingDetails   = errors.New("missing payment details")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderMismatch    = errors.New("order does not match donation")
	ErrNotOwner         = errors.New("donation does not belong to caller")
	ErrNotFound         = errors.New("donation not found")
	ErrPaymentConflict  = errors.New("donation already settled with a different payment")
	ErrGateway          = errors.New("payment gateway request failed")
	ErrMalformedEvent   = errors.New("malformed webhook payload")
	ErrNoUPI            = errors.New("no UPI id configured")
)
