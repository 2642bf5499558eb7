package codec

import "strings"

// Storage key layout. The shapes match the storefront's browser profile
// so a localStorage dump can be imported as-is.
const (
	KeyProducts  = "admin_products"
	KeyAllOrders = "all_orders"
	KeyUsers     = "users"

	cartPrefix     = "cart_"
	wishlistPrefix = "wishlist_"
	ordersPrefix   = "user_orders_"
)

func CartKey(userID string) string     { return cartPrefix + userID }
func WishlistKey(userID string) string { return wishlistPrefix + userID }
func UserOrdersKey(userID string) string {
	return ordersPrefix + userID
}

// UserIDFromOrdersKey extracts the user id from a per-user orders key,
// used when enumerating every user's order collection for admin views.
func UserIDFromOrdersKey(key string) (string, bool) {
	if !strings.HasPrefix(key, ordersPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(key, ordersPrefix)
	return id, id != ""
}

// UserIDFromCartKey extracts the user id from a cart key.
func UserIDFromCartKey(key string) (string, bool) {
	if !strings.HasPrefix(key, cartPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(key, cartPrefix)
	return id, id != ""
}
