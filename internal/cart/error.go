package cart

import "errors"

var (
	// -- Validation & Input --
	ErrMissingUser    = errors.New("user id is required")
	ErrMissingProduct = errors.New("product id is required")

	// -- Resource State --
	ErrOutOfStock = errors.New("product is out of stock")
)
