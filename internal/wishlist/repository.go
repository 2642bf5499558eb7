package wishlist

import (
	"context"

	"shopledger/internal/codec"
)

// Repository persists one item collection per user under wishlist_<userID>.
type Repository interface {
	Items(ctx context.Context, userID string) ([]Item, error)
	Update(ctx context.Context, userID string, mutate func(items []Item) ([]Item, error)) error
}

type repository struct {
	codec *codec.Codec
}

func NewRepository(c *codec.Codec) Repository {
	return &repository{codec: c}
}

func (r *repository) load(ctx context.Context, userID string) ([]Item, error) {
	var items []Item
	if err := r.codec.LoadList(ctx, codec.WishlistKey(userID), &items); err != nil {
		return nil, err
	}
	valid := items[:0]
	for _, it := range items {
		if it.ProductID != "" {
			valid = append(valid, it)
		}
	}
	return valid, nil
}

func (r *repository) Items(ctx context.Context, userID string) ([]Item, error) {
	return r.load(ctx, userID)
}

func (r *repository) Update(ctx context.Context, userID string, mutate func([]Item) ([]Item, error)) error {
	key := codec.WishlistKey(userID)
	return r.codec.WithLock(key, func() error {
		items, err := r.load(ctx, userID)
		if err != nil {
			return err
		}
		next, err := mutate(items)
		if err != nil {
			return err
		}
		return r.codec.SaveList(ctx, key, next)
	})
}
