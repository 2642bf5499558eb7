package inventory

import "time"

// PlaceholderImage is used when a product is created without an image.
const PlaceholderImage = "https://placehold.co/400x400?text=No+Image"

type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// lowStockCeiling is the largest stock level still reported as low.
const lowStockCeiling = 5

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock == 0:
		return StatusOutOfStock
	case p.Stock <= lowStockCeiling:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Available reports whether the product can be added to a cart.
func (p Product) Available() bool {
	return p.Stock > 0
}
