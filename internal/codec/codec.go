// Package codec reads and writes typed record collections through the
// key-value store. A missing key decodes as an empty collection; corrupt
// JSON degrades to an empty collection and is logged as a storage error
// instead of crashing the caller.
package codec

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"shopledger/internal/kvstore"
	"shopledger/internal/logger"
)

type Codec struct {
	store kvstore.Store
	locks *kvstore.KeyMutex
}

func New(store kvstore.Store) *Codec {
	return &Codec{store: store, locks: kvstore.NewKeyMutex()}
}

// Store exposes the underlying store for key enumeration.
func (c *Codec) Store() kvstore.Store { return c.store }

// WithLock runs fn while holding the mutex for the named scope. Every
// read-modify-write cycle against a key must go through this.
func (c *Codec) WithLock(scope string, fn func() error) error {
	unlock := c.locks.Lock(scope)
	defer unlock()
	return fn()
}

// LoadList decodes the collection stored at key into out (a pointer to a
// slice). Missing and corrupt values both leave out empty.
func (c *Codec) LoadList(ctx context.Context, key string, out any) error {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.FromCtx(ctx).Error("corrupt stored collection, treating as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return nil
}

// SaveList encodes the collection and writes it at key.
func (c *Codec) SaveList(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", kvstore.ErrStorage, key, err)
	}
	return c.store.Set(ctx, key, string(data))
}

// DeleteKey removes the collection stored at key.
func (c *Codec) DeleteKey(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}
