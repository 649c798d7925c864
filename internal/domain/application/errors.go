package application

import "errors"

// Shared error kinds for the whole origination core. Adapter layers map these
// onto transport codes; anything else is an internal error.
var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrNotFound               = errors.New("application not found")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrStoreUnavailable       = errors.New("store unavailable")
)
