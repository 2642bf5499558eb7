package order

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopledger/internal/events"
	"shopledger/internal/logger"
)

const (
	taxRate           = 0.10
	flatShipping      = 5.99
	freeShippingAbove = 50.0
)

// Service defines the order ledger operations.
type Service interface {
	PlaceOrder(ctx context.Context, userID string, items []Item, address Address, payment PaymentMethod) (*Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status Status) (*Order, error)
	GetOrdersForUser(ctx context.Context, userID string) ([]Order, error)
	GetAllOrders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, orderNumber string) error
}

type service struct {
	repo Repository
	bus  *events.Bus
}

func NewService(repo Repository, bus *events.Bus) Service {
	return &service{repo: repo, bus: bus}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// newOrderNumber builds an ORD-<millis>-<suffix> number with uuid-derived
// entropy so numbers stay unique across restarts.
func newOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

func (s *service) PlaceOrder(ctx context.Context, userID string, items []Item, address Address, payment PaymentMethod) (*Order, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !address.Complete() {
		return nil, ErrIncompleteAddress
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 || it.Price < 0 {
			return nil, fmt.Errorf("%w: product %q quantity %d price %.2f",
				ErrInvalidItem, it.ProductID, it.Quantity, it.Price)
		}
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * taxRate)
	shipping := flatShipping
	if subtotal > freeShippingAbove {
		shipping = 0
	}
	total := round2(subtotal + tax + shipping)

	now := time.Now()
	o := Order{
		OrderNumber:     newOrderNumber(now),
		UserID:          userID,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           total,
		Status:          StatusProcessing,
		PaymentMethod:   payment,
		ShippingAddress: address,
		CreatedAt:       now,
	}

	if err := s.repo.Append(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", userID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)
	s.bus.Publish(events.Change{Kind: events.KindOrder, UserID: userID, Ref: o.OrderNumber})

	return &o, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderNumber string, status Status) (*Order, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	updated, err := s.repo.Mutate(ctx, orderNumber, func(o *Order) error {
		if !CanTransition(o.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
		}
		o.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_number", orderNumber),
		zap.String("status", string(status)),
	)
	s.bus.Publish(events.Change{Kind: events.KindOrder, UserID: updated.UserID, Ref: orderNumber})

	return updated, nil
}

func sortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (s *service) GetOrdersForUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	orders, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (s *service) GetAllOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (s *service) DeleteOrder(ctx context.Context, orderNumber string) error {
	if err := s.repo.Delete(ctx, orderNumber); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order deleted", zap.String("order_number", orderNumber))
	s.bus.Publish(events.Change{Kind: events.KindOrder, Ref: orderNumber})
	return nil
}
