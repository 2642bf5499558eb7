package cart

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shopledger/internal/events"
	"shopledger/internal/inventory"
	"shopledger/internal/logger"
)

// Service defines the cart ledger operations.
type Service interface {
	// AddItem puts one unit of the product in the cart, incrementing the
	// quantity when a line for it already exists.
	AddItem(ctx context.Context, userID, productID string) (*Item, error)
	// SetQuantity sets a line's quantity, clamped to [1, stock]. A
	// quantity below one removes the line. Returns the resulting
	// quantity (zero when removed).
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (int, error)
	// RemoveItem deletes the line; removing an absent line is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) error
	// GetCart returns the user's lines in insertion order.
	GetCart(ctx context.Context, userID string) ([]Item, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo        Repository
	productRepo inventory.Repository
	bus         *events.Bus
}

func NewService(repo Repository, productRepo inventory.Repository, bus *events.Bus) Service {
	return &service{repo: repo, productRepo: productRepo, bus: bus}
}

func (s *service) AddItem(ctx context.Context, userID, productID string) (*Item, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if productID == "" {
		return nil, ErrMissingProduct
	}

	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	// A deleted product is treated as unavailable, not as a crash.
	if product == nil || !product.Available() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, productID)
	}

	var line *Item
	err = s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity++
				cp := items[i]
				line = &cp
				return items, nil
			}
		}
		item := Item{
			ProductID: productID,
			Name:      product.Title,
			Price:     product.Price,
			Quantity:  1,
			Image:     product.Image,
			AddedAt:   time.Now(),
		}
		line = &item
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("cart item added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", line.Quantity),
	)
	s.bus.Publish(events.Change{Kind: events.KindCart, UserID: userID, Ref: productID})

	return line, nil
}

func (s *service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (int, error) {
	if userID == "" {
		return 0, ErrMissingUser
	}
	if productID == "" {
		return 0, ErrMissingProduct
	}

	if quantity < 1 {
		if err := s.RemoveItem(ctx, userID, productID); err != nil {
			return 0, err
		}
		return 0, nil
	}

	// Clamp against current stock; a missing product clamps to zero and
	// removes the line.
	stock := 0
	if product, err := s.productRepo.Get(ctx, productID); err != nil {
		return 0, err
	} else if product != nil {
		stock = product.Stock
	}
	if stock == 0 {
		if err := s.RemoveItem(ctx, userID, productID); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if quantity > stock {
		quantity = stock
	}

	err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
				break
			}
		}
		return items, nil
	})
	if err != nil {
		return 0, err
	}

	s.bus.Publish(events.Change{Kind: events.KindCart, UserID: userID, Ref: productID})
	return quantity, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrMissingUser
	}

	err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		next := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				next = append(next, it)
			}
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Change{Kind: events.KindCart, UserID: userID, Ref: productID})
	return nil
}

func (s *service) GetCart(ctx context.Context, userID string) ([]Item, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	return s.repo.Items(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUser
	}

	err := s.repo.Update(ctx, userID, func([]Item) ([]Item, error) {
		return []Item{}, nil
	})
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("cart cleared", zap.String("user_id", userID))
	s.bus.Publish(events.Change{Kind: events.KindCart, UserID: userID})
	return nil
}
