package alert

import "errors"

// Service errors
var (
	ErrAlertNotFound    = errors.New("fraud alert not found")
	ErrInvalidStatus    = errors.New("invalid alert status")
	ErrAlreadyResolved  = errors.New("alert already resolved")
	ErrMissingReference = errors.New("alert requires a user and a transaction")
)
