package cart

import (
	"context"

	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/pricing"
	"github.com/threadline/storefront/internal/state"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
	"github.com/threadline/storefront/pkg/logger"
)

// Service exposes the cart's mutation and read operations. Every operation is
// total: referential absence and out-of-range quantities are normalized, never
// surfaced as errors. The only error path is the durable store itself.
type Service interface {
	Items(ctx context.Context) []Item
	Count(ctx context.Context) int
	AddOrIncrement(ctx context.Context, product catalog.Product, qty int) error
	SetQuantityDelta(ctx context.Context, id, delta int) error
	Remove(ctx context.Context, id int) error
	Clear(ctx context.Context) error
	Summary(ctx context.Context) pricing.Summary
}

type service struct {
	store *state.Store
	logg  *logger.Logger
}

// NewService builds a cart service over the collection store.
func NewService(store *state.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "collection store is required")
	}
	return &service{store: store, logg: logg}, nil
}

// Items returns the current cart in insertion order.
func (s *service) Items(ctx context.Context) []Item {
	return state.Load[Item](ctx, s.store, state.NamespaceCart)
}

// Count returns the total quantity across all lines (the header badge value).
func (s *service) Count(ctx context.Context) int {
	total := 0
	for _, item := range s.Items(ctx) {
		total += item.Quantity
	}
	return total
}

// AddOrIncrement merges the product into the cart: an existing line's
// quantity grows by qty, otherwise a new line is appended with snapshot
// fields taken from the product now. Quantities below 1 are normalized to 1.
func (s *service) AddOrIncrement(ctx context.Context, product catalog.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}

	items := s.Items(ctx)
	merged := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: qty,
		})
	}

	return s.store.Save(ctx, state.NamespaceCart, items)
}

// SetQuantityDelta adjusts the matching line's quantity, clamping at 1. An
// absent id leaves the cart untouched: double-fired UI actions must not fault.
func (s *service) SetQuantityDelta(ctx context.Context, id, delta int) error {
	items := s.Items(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		quantity := items[i].Quantity + delta
		if quantity < 1 {
			quantity = 1
		}
		items[i].Quantity = quantity
		return s.store.Save(ctx, state.NamespaceCart, items)
	}
	return nil
}

// Remove deletes the matching line; absent ids are a silent no-op.
func (s *service) Remove(ctx context.Context, id int) error {
	items := s.Items(ctx)
	for i := range items {
		if items[i].ID == id {
			return s.store.Save(ctx, state.NamespaceCart, append(items[:i:i], items[i+1:]...))
		}
	}
	return nil
}

// Clear empties the cart. Checkout uses this after announcing success; there
// is no payment integration behind it.
func (s *service) Clear(ctx context.Context) error {
	return s.store.Save(ctx, state.NamespaceCart, []Item{})
}

// Summary prices the current cart contents.
func (s *service) Summary(ctx context.Context) pricing.Summary {
	items := s.Items(ctx)
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Price: item.Price, Quantity: item.Quantity})
	}
	return pricing.ComputeSummary(lines)
}
