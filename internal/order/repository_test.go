package order

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/codec"
	"shopledger/internal/kvstore"
)

func testOrder(number, userID string) Order {
	return Order{
		OrderNumber: number,
		UserID:      userID,
		Items:       []Item{{ProductID: "p1", Name: "Mug", Price: 10, Quantity: 1}},
		Subtotal:    10, Tax: 1, Shipping: 5.99, Total: 16.99,
		Status:    StatusProcessing,
		CreatedAt: time.Now(),
	}
}

func TestRepository_AppendWritesBothCollections(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewRepository(codec.New(store))

	require.NoError(t, repo.Append(ctx, testOrder("ORD-1", "u1")))

	raw, ok, err := store.Get(ctx, codec.KeyAllOrders)
	require.NoError(t, err)
	require.True(t, ok)
	var global []Order
	require.NoError(t, json.Unmarshal([]byte(raw), &global))
	require.Len(t, global, 1)

	raw, ok, err = store.Get(ctx, codec.UserOrdersKey("u1"))
	require.NoError(t, err)
	require.True(t, ok)
	var mine []Order
	require.NoError(t, json.Unmarshal([]byte(raw), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, global[0].OrderNumber, mine[0].OrderNumber)
}

func TestRepository_ByUserRepairsDriftedIndex(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewRepository(codec.New(store))

	require.NoError(t, repo.Append(ctx, testOrder("ORD-1", "u1")))
	require.NoError(t, repo.Append(ctx, testOrder("ORD-2", "u1")))

	// Simulate an external writer corrupting the derived index.
	require.NoError(t, store.Set(ctx, codec.UserOrdersKey("u1"), `[]`))

	orders, err := repo.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// The stored index was rewritten from the source of truth.
	raw, _, err := store.Get(ctx, codec.UserOrdersKey("u1"))
	require.NoError(t, err)
	var repaired []Order
	require.NoError(t, json.Unmarshal([]byte(raw), &repaired))
	assert.Len(t, repaired, 2)
}

func TestRepository_ByUserFiltersOtherUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(codec.New(kvstore.NewMemory()))

	require.NoError(t, repo.Append(ctx, testOrder("ORD-1", "u1")))
	require.NoError(t, repo.Append(ctx, testOrder("ORD-2", "u2")))

	mine, err := repo.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ORD-1", mine[0].OrderNumber)
}

func TestRepository_DeleteRemovesFromBoth(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewRepository(codec.New(store))

	require.NoError(t, repo.Append(ctx, testOrder("ORD-1", "u1")))
	require.NoError(t, repo.Delete(ctx, "ORD-1"))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	mine, err := repo.ByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestRepository_MutateUnknownOrder(t *testing.T) {
	repo := NewRepository(codec.New(kvstore.NewMemory()))

	_, err := repo.Mutate(context.Background(), "ORD-ghost", func(o *Order) error {
		o.Status = StatusShipped
		return nil
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRepository_CorruptGlobalCollectionDegrades(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, codec.KeyAllOrders, `{broken`))

	repo := NewRepository(codec.New(store))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// The ledger keeps working after the corrupt read.
	require.NoError(t, repo.Append(ctx, testOrder("ORD-1", "u1")))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
