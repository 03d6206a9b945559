package transaction

import "errors"

// Service errors
var (
	ErrInvalidRequest      = errors.New("invalid transaction request")
	ErrSelfTransfer        = errors.New("cannot send money to yourself")
	ErrRecipientRequired   = errors.New("transfer requires a recipient")
	ErrAmbiguousRecipient  = errors.New("specify either a recipient or a custom recipient, not both")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotInvolved         = errors.New("user is not involved in this transaction")
)
