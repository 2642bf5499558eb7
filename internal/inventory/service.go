package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopledger/internal/events"
	"shopledger/internal/logger"
)

type CreateProductInput struct {
	Title       string
	Price       float64
	Category    string
	Image       string
	Stock       int
	Description string
}

// UpdateProductInput merges non-nil fields into an existing product.
type UpdateProductInput struct {
	Title       *string
	Price       *float64
	Category    *string
	Image       *string
	Stock       *int
	Description *string
}

// Service defines the inventory ledger operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, stock int) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type service struct {
	repo Repository
	bus  *events.Bus
}

func NewService(repo Repository, bus *events.Bus) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	if input.Title == "" {
		return nil, ErrMissingTitle
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	product := Product{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		Stock:       input.Stock,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	if product.Image == "" {
		product.Image = PlaceholderImage
	}

	err := s.repo.Update(ctx, func(products []Product) ([]Product, error) {
		return append(products, product), nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", product.ID),
		zap.String("title", product.Title),
	)
	s.bus.Publish(events.Change{Kind: events.KindProduct, Ref: product.ID})

	return &product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	var updated *Product
	err := s.repo.Update(ctx, func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID != id {
				continue
			}
			p := &products[i]
			if input.Title != nil {
				p.Title = *input.Title
			}
			if input.Price != nil {
				p.Price = *input.Price
			}
			if input.Category != nil {
				p.Category = *input.Category
			}
			if input.Image != nil {
				p.Image = *input.Image
			}
			if input.Stock != nil {
				p.Stock = *input.Stock
			}
			if input.Description != nil {
				p.Description = *input.Description
			}
			cp := *p
			updated = &cp
			return products, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindProduct, Ref: id})
	return updated, nil
}

// DeleteProduct removes the product from the catalog. Cart, wishlist and
// order records keep their dangling references and degrade to unavailable.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	err := s.repo.Update(ctx, func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	})
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted", zap.String("product_id", id))
	s.bus.Publish(events.Change{Kind: events.KindProduct, Ref: id})
	return nil
}

func (s *service) AdjustStock(ctx context.Context, id string, stock int) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	var updated *Product
	err := s.repo.Update(ctx, func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == id {
				products[i].Stock = stock
				cp := products[i]
				updated = &cp
				return products, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("stock adjusted",
		zap.String("product_id", id),
		zap.Int("stock", stock),
	)
	s.bus.Publish(events.Change{Kind: events.KindProduct, Ref: id})

	return updated, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}
