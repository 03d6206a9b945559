package risk

import "errors"

// Service errors
var (
	ErrInvalidInput       = errors.New("invalid input for risk evaluation")
	ErrHistoryUnavailable = errors.New("transaction history unavailable")
)
