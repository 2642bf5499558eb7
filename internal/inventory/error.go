package inventory

import "errors"

var (
	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrInvalidStock = errors.New("stock cannot be negative")
	ErrInvalidPrice = errors.New("price cannot be negative")
	ErrMissingTitle = errors.New("product title is required")
)
