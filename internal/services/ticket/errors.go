package ticket

import "errors"

var (
	ErrTicketNotFound = errors.New("support ticket not found")
	ErrInvalidStatus  = errors.New("invalid ticket status")
	ErrEmptySubject   = errors.New("subject is required")
	ErrEmptyMessage   = errors.New("message is required")
)
