// Package checkout turns a cart into an order: it re-validates stock,
// places the order and empties the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shopledger/internal/cart"
	"shopledger/internal/inventory"
	"shopledger/internal/logger"
	"shopledger/internal/order"
)

var ErrCartEmpty = errors.New("cart is empty")

type Service interface {
	Checkout(ctx context.Context, userID string, address order.Address, payment order.PaymentMethod) (*order.Order, error)
}

type service struct {
	carts       cart.Service
	orders      order.Service
	productRepo inventory.Repository
}

func NewService(carts cart.Service, orders order.Service, productRepo inventory.Repository) Service {
	return &service{carts: carts, orders: orders, productRepo: productRepo}
}

func (s *service) Checkout(ctx context.Context, userID string, address order.Address, payment order.PaymentMethod) (*order.Order, error) {
	lines, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// Re-check availability at checkout time; prices stay as captured
	// when the line was added. Stock is not decremented here.
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", cart.ErrOutOfStock, line.ProductID)
		}
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	placed, err := s.orders.PlaceOrder(ctx, userID, items, address, payment)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists; a cart left behind is recoverable, losing
		// the order is not.
		logger.FromCtx(ctx).Error("cart clear after checkout failed",
			zap.String("user_id", userID),
			zap.String("order_number", placed.OrderNumber),
			zap.Error(err),
		)
	}

	return placed, nil
}
