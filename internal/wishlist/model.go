package wishlist

import "time"

// Item is a quantity-less product snapshot saved for later.
type Item struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	AddedAt   time.Time `json:"addedAt"`
}
