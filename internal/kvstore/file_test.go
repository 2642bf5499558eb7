package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, "user_orders_u1", `[{"orderNumber":"ORD-1"}]`))

	v, ok, err := f.Get(ctx, "user_orders_u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"orderNumber":"ORD-1"}]`, v)
}

func TestFile_MissingKey(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, ok, err := f.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	assert.NoError(t, f.Delete(ctx, "nope"))
}

func TestFile_Overwrite(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, "users", `[]`))
	require.NoError(t, f.Set(ctx, "users", `[{"id":"u1"}]`))

	v, _, err := f.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"u1"}]`, v)
}

func TestFile_KeysEscaping(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	// Keys with separators must survive the filename encoding.
	require.NoError(t, f.Set(ctx, "cart_user/with/slashes", "[]"))
	require.NoError(t, f.Set(ctx, "all_orders", "[]"))

	keys, err := f.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cart_user/with/slashes", "all_orders"}, keys)
}
