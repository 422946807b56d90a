package admin

import "errors"

var (
	ErrMissingIdentity = errors.New("email or phone required")
	ErrInvalidDonation = errors.New("invalid offline donation")
)
