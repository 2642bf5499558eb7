package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shopledger/internal/codec"
	"shopledger/internal/events"
	"shopledger/internal/inventory"
	"shopledger/internal/kvstore"
)

// MockProductRepository is a mock implementation of inventory.Repository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]inventory.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, id string) (*inventory.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, mutate func([]inventory.Product) ([]inventory.Product, error)) error {
	args := m.Called(ctx, mutate)
	return args.Error(0)
}

func newTestService(products *MockProductRepository) Service {
	repo := NewRepository(codec.New(kvstore.NewMemory()))
	return NewService(repo, products, events.NewBus())
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("AddsOnce", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("Get", mock.Anything, "p1").
			Return(&inventory.Product{ID: "p1", Title: "Mug", Price: 9.99, Image: "mug.png"}, nil)

		svc := newTestService(products)

		added, err := svc.AddItem(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.True(t, added)

		// Second add is a silent no-op, not an error.
		added, err = svc.AddItem(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.False(t, added)

		items, err := svc.GetWishlist(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Mug", items[0].Name)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("Get", mock.Anything, "ghost").Return(nil, nil)

		svc := newTestService(products)

		_, err := svc.AddItem(ctx, "u1", "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("MissingUser", func(t *testing.T) {
		svc := newTestService(new(MockProductRepository))
		_, err := svc.AddItem(ctx, "", "p1")
		assert.ErrorIs(t, err, ErrMissingUser)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	products.On("Get", mock.Anything, "p1").
		Return(&inventory.Product{ID: "p1", Title: "Mug", Price: 9.99}, nil)

	svc := newTestService(products)

	_, err := svc.AddItem(ctx, "u1", "p1")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, "u1", "p1"))
	// Idempotent.
	require.NoError(t, svc.RemoveItem(ctx, "u1", "p1"))

	items, err := svc.GetWishlist(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
