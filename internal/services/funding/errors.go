package funding

import "errors"

var (
	ErrCardNumberRequired = errors.New("card number is required")
	ErrExpiryRequired     = errors.New("expiry date is required")
	ErrInvalidExpiry      = errors.New("invalid expiry date")
	ErrCardExpired        = errors.New("card has expired")
	ErrLuhnCheckFailed    = errors.New("invalid card number: failed Luhn check")
	ErrInvalidAmount      = errors.New("deposit amount must be positive")
)
