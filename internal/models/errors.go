package models

import "errors"

// Business errors shared across services and repositories. Callers match
// them with errors.Is; repositories wrap storage failures separately so a
// driver error is never mistaken for a business rejection.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidPurpose    = errors.New("unknown transaction purpose")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")

	ErrDepositNotFound   = errors.New("deposit not found")
	ErrDepositNotPending = errors.New("deposit is not pending")

	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodInUse    = errors.New("payment method is referenced by a pending deposit")
	ErrPaymentMethodInactive = errors.New("payment method is inactive")

	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingNotActive   = errors.New("booking is not in a refundable state")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketNotActive    = errors.New("ticket is not in a refundable state")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMembershipActive   = errors.New("an active membership already exists")
)
