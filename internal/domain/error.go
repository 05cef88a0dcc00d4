package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")

	// Checkout / trial
	ErrPriceNotFound    = errors.New("no price configured for platform and quantity")
	ErrTrialAlreadyUsed = errors.New("free trial already consumed for this card")

	// Reorder
	ErrNoOrders          = errors.New("customer has no previous orders")
	ErrOrderLimitReached = errors.New("standing order limit reached")
	ErrCooldownActive    = errors.New("reorder cooldown has not elapsed")

	// External collaborators
	ErrStoreFailure     = errors.New("record store operation failed")
	ErrProcessorFailure = errors.New("payment processor operation failed")
	ErrProviderFailure  = errors.New("fulfillment provider operation failed")
	ErrEmailFailure     = errors.New("email delivery failed")
)
