package wishlist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shopledger/internal/events"
	"shopledger/internal/inventory"
	"shopledger/internal/logger"
)

// Service defines the wishlist ledger operations.
type Service interface {
	// AddItem saves the product; it reports added=false without error
	// when the product is already on the list.
	AddItem(ctx context.Context, userID, productID string) (added bool, err error)
	// RemoveItem deletes the entry; removing an absent entry is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) error
	GetWishlist(ctx context.Context, userID string) ([]Item, error)
}

type service struct {
	repo        Repository
	productRepo inventory.Repository
	bus         *events.Bus
}

func NewService(repo Repository, productRepo inventory.Repository, bus *events.Bus) Service {
	return &service{repo: repo, productRepo: productRepo, bus: bus}
}

func (s *service) AddItem(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, ErrMissingUser
	}
	if productID == "" {
		return false, ErrMissingProduct
	}

	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	added := false
	err = s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		for _, it := range items {
			if it.ProductID == productID {
				return items, nil
			}
		}
		added = true
		return append(items, Item{
			ProductID: productID,
			Name:      product.Title,
			Price:     product.Price,
			Image:     product.Image,
			AddedAt:   time.Now(),
		}), nil
	})
	if err != nil {
		return false, err
	}

	if added {
		logger.FromCtx(ctx).Info("wishlist item added",
			zap.String("user_id", userID),
			zap.String("product_id", productID),
		)
		s.bus.Publish(events.Change{Kind: events.KindWishlist, UserID: userID, Ref: productID})
	}
	return added, nil
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

	s.bus.Publish(events.Change{Kind: events.KindWishlist, UserID: userID, Ref: productID})
	return nil
}

func (s *service) GetWishlist(ctx context.Context, userID string) ([]Item, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	return s.repo.Items(ctx, userID)
}
