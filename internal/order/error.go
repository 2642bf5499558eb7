package order

import "errors"

var (
	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")

	// -- Validation & Input --
	ErrMissingUser       = errors.New("user id is required")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidItem       = errors.New("order item is invalid")
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not permitted")
)
