package inventory

import (
	"context"

	"shopledger/internal/codec"
)

// Repository persists the product catalog as one collection under the
// admin_products key.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	// Update runs mutate against the current catalog under the catalog
	// lock and persists whatever it returns.
	Update(ctx context.Context, mutate func(products []Product) ([]Product, error)) error
}

type repository struct {
	codec *codec.Codec
}

func NewRepository(c *codec.Codec) Repository {
	return &repository{codec: c}
}

func (r *repository) load(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.codec.LoadList(ctx, codec.KeyProducts, &products); err != nil {
		return nil, err
	}
	// Records without an id cannot be referenced and are dropped.
	valid := products[:0]
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if p.Image == "" {
			p.Image = PlaceholderImage
		}
		valid = append(valid, p)
	}
	return valid, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	products, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *repository) Update(ctx context.Context, mutate func([]Product) ([]Product, error)) error {
	return r.codec.WithLock(codec.KeyProducts, func() error {
		products, err := r.load(ctx)
		if err != nil {
			return err
		}
		next, err := mutate(products)
		if err != nil {
			return err
		}
		return r.codec.SaveList(ctx, codec.KeyProducts, next)
	})
}
