package wishlist

import "errors"

var (
	ErrMissingUser     = errors.New("user id is required")
	ErrMissingProduct  = errors.New("product id is required")
	ErrProductNotFound = errors.New("product not found")
)
