package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopledger/internal/codec"
	"shopledger/internal/logger"
)

// Repository persists orders twice for layout compatibility: the global
// all_orders collection and one user_orders_<userID> collection per
// user. The global collection is the source of truth; the per-user one
// is a derived index kept in step under the shared orders lock, and
// reads repair it when it has drifted.
type Repository interface {
	Append(ctx context.Context, o Order) error
	// Mutate applies fn to the order with the given number in both
	// collections as a single logical write.
	Mutate(ctx context.Context, orderNumber string, fn func(o *Order) error) (*Order, error)
	Delete(ctx context.Context, orderNumber string) error
	All(ctx context.Context) ([]Order, error)
	ByUser(ctx context.Context, userID string) ([]Order, error)
}

// ordersLock is the single lock scope covering both collections, so the
// dual write can never interleave with another order mutation.
const ordersLock = codec.KeyAllOrders

type repository struct {
	codec *codec.Codec
}

func NewRepository(c *codec.Codec) Repository {
	return &repository{codec: c}
}

func (r *repository) loadAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.codec.LoadList(ctx, codec.KeyAllOrders, &orders); err != nil {
		return nil, err
	}
	valid := orders[:0]
	for _, o := range orders {
		if o.OrderNumber == "" || o.UserID == "" {
			continue
		}
		if o.Status == "" {
			o.Status = StatusProcessing
		}
		valid = append(valid, o)
	}
	return valid, nil
}

func forUser(orders []Order, userID string) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// saveBoth writes the global collection and the affected user's derived
// index. A failed second write rolls the first back so the two never
// diverge on disk.
func (r *repository) saveBoth(ctx context.Context, prev, next []Order, userID string) error {
	if err := r.codec.SaveList(ctx, codec.KeyAllOrders, next); err != nil {
		return err
	}
	if err := r.codec.SaveList(ctx, codec.UserOrdersKey(userID), forUser(next, userID)); err != nil {
		if rbErr := r.codec.SaveList(ctx, codec.KeyAllOrders, prev); rbErr != nil {
			logger.FromCtx(ctx).Error("order index rollback failed, collections may diverge until next read",
				zap.String("user_id", userID),
				zap.Error(rbErr),
			)
		}
		return err
	}
	return nil
}

func (r *repository) Append(ctx context.Context, o Order) error {
	return r.codec.WithLock(ordersLock, func() error {
		orders, err := r.loadAll(ctx)
		if err != nil {
			return err
		}
		prev := append([]Order(nil), orders...)
		// Newest first.
		next := append([]Order{o}, orders...)
		return r.saveBoth(ctx, prev, next, o.UserID)
	})
}

func (r *repository) Mutate(ctx context.Context, orderNumber string, fn func(*Order) error) (*Order, error) {
	var mutated *Order
	err := r.codec.WithLock(ordersLock, func() error {
		orders, err := r.loadAll(ctx)
		if err != nil {
			return err
		}
		prev := append([]Order(nil), orders...)
		for i := range orders {
			if orders[i].OrderNumber != orderNumber {
				continue
			}
			if err := fn(&orders[i]); err != nil {
				return err
			}
			cp := orders[i]
			mutated = &cp
			return r.saveBoth(ctx, prev, orders, orders[i].UserID)
		}
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	})
	if err != nil {
		return nil, err
	}
	return mutated, nil
}

func (r *repository) Delete(ctx context.Context, orderNumber string) error {
	return r.codec.WithLock(ordersLock, func() error {
		orders, err := r.loadAll(ctx)
		if err != nil {
			return err
		}
		prev := append([]Order(nil), orders...)
		for i := range orders {
			if orders[i].OrderNumber == orderNumber {
				userID := orders[i].UserID
				next := append(orders[:i:i], orders[i+1:]...)
				return r.saveBoth(ctx, prev, next, userID)
			}
		}
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	})
}

func (r *repository) All(ctx context.Context) ([]Order, error) {
	return r.loadAll(ctx)
}

// ByUser answers from the source of truth and repairs the derived index
// when the stored per-user collection has drifted from it.
func (r *repository) ByUser(ctx context.Context, userID string) ([]Order, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	derived := forUser(all, userID)

	var stored []Order
	if err := r.codec.LoadList(ctx, codec.UserOrdersKey(userID), &stored); err == nil {
		if diverged(stored, derived) {
			logger.FromCtx(ctx).Warn("per-user order index diverged, repairing",
				zap.String("user_id", userID),
				zap.Int("stored", len(stored)),
				zap.Int("derived", len(derived)),
			)
			_ = r.codec.WithLock(ordersLock, func() error {
				return r.codec.SaveList(ctx, codec.UserOrdersKey(userID), derived)
			})
		}
	}
	return derived, nil
}

func diverged(stored, derived []Order) bool {
	if len(stored) != len(derived) {
		return true
	}
	byNumber := make(map[string]Status, len(derived))
	for _, o := range derived {
		byNumber[o.OrderNumber] = o.Status
	}
	for _, o := range stored {
		status, ok := byNumber[o.OrderNumber]
		if !ok || status != o.Status {
			return true
		}
	}
	return false
}
