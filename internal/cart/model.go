package cart

import "time"

// Item is one cart line. Name, price and image are snapshots captured at
// add time; the product itself may change or disappear afterwards.
type Item struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	AddedAt   time.Time `json:"addedAt"`
}
