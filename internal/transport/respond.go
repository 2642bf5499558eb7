package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopledger/internal/cart"
	"shopledger/internal/checkout"
	"shopledger/internal/inventory"
	"shopledger/internal/kvstore"
	"shopledger/internal/order"
	"shopledger/internal/user"
	"shopledger/internal/wishlist"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps ledger sentinels onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, wishlist.ErrProductNotFound):
		status = http.StatusNotFound

	case errors.Is(err, cart.ErrOutOfStock):
		status = http.StatusConflict

	case errors.Is(err, user.ErrEmailExists):
		status = http.StatusConflict

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInactive):
		status = http.StatusUnauthorized

	case errors.Is(err, inventory.ErrInvalidStock),
		errors.Is(err, inventory.ErrInvalidPrice),
		errors.Is(err, inventory.ErrMissingTitle),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidItem),
		errors.Is(err, order.ErrIncompleteAddress),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, cart.ErrMissingUser),
		errors.Is(err, wishlist.ErrMissingProduct),
		errors.Is(err, user.ErrMissingEmail),
		errors.Is(err, user.ErrMissingPassword),
		errors.Is(err, checkout.ErrCartEmpty):
		status = http.StatusBadRequest

	case errors.Is(err, kvstore.ErrStorage):
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, errorBody{Error: err.Error()})
}
