package payment

import "errors"

var (
	ErrNotFound          = errors.New("payment not found")
	ErrInvalidRecipient  = errors.New("invalid recipient")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidTransition = errors.New("invalid state transition")
)
