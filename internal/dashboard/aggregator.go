// Package dashboard computes admin summary statistics over point-in-time
// snapshots of the ledgers. It never mutates anything.
package dashboard

import (
	"context"

	"shopledger/internal/inventory"
	"shopledger/internal/order"
	"shopledger/internal/user"
)

type Stats struct {
	TotalOrders        int     `json:"totalOrders"`
	TotalProducts      int     `json:"totalProducts"`
	TotalUsers         int     `json:"totalUsers"`
	TotalRevenue       float64 `json:"totalRevenue"`
	PendingOrders      int     `json:"pendingOrders"`
	LowStockProducts   int     `json:"lowStockProducts"`
	OutOfStockProducts int     `json:"outOfStockProducts"`
}

// Compute aggregates the snapshots. Empty inputs yield all zeroes.
func Compute(products []inventory.Product, orders []order.Order, users []user.User) Stats {
	stats := Stats{
		TotalOrders:   len(orders),
		TotalProducts: len(products),
		TotalUsers:    len(users),
	}

	for _, o := range orders {
		stats.TotalRevenue += o.Total
		if o.Status == order.StatusProcessing {
			stats.PendingOrders++
		}
	}
	for _, p := range products {
		switch p.StockStatus() {
		case inventory.StatusLowStock:
			stats.LowStockProducts++
		case inventory.StatusOutOfStock:
			stats.OutOfStockProducts++
		}
	}
	return stats
}

// Service snapshots the ledgers and aggregates them.
type Service struct {
	inventory inventory.Service
	orders    order.Service
	users     user.Service
}

func NewService(inv inventory.Service, orders order.Service, users user.Service) *Service {
	return &Service{inventory: inv, orders: orders, users: users}
}

func (s *Service) Snapshot(ctx context.Context) (Stats, error) {
	products, err := s.inventory.ListProducts(ctx)
	if err != nil {
		return Stats{}, err
	}
	orders, err := s.orders.GetAllOrders(ctx)
	if err != nil {
		return Stats{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Compute(products, orders, users), nil
}
