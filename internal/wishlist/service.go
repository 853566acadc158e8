package wishlist

import (
	"context"

	"github.com/threadline/storefront/internal/cart"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/state"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
	"github.com/threadline/storefront/pkg/logger"
)

// Service exposes the wishlist operations. Toggle is the primary mutation:
// the heart icon on a product card flips membership, so toggling twice always
// restores the starting state.
type Service interface {
	Items(ctx context.Context) []Item
	Contains(ctx context.Context, id int) bool
	Toggle(ctx context.Context, product catalog.Product) (added bool, err error)
	Remove(ctx context.Context, id int) error
	MoveToCart(ctx context.Context, id int) error
}

type service struct {
	store *state.Store
	cart  cart.Service
	logg  *logger.Logger
}

// NewService builds a wishlist service. The cart service is required because
// moving a saved item is a cross-collection operation.
func NewService(store *state.Store, cartSvc cart.Service, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "collection store is required")
	}
	if cartSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service is required")
	}
	return &service{store: store, cart: cartSvc, logg: logg}, nil
}

// Items returns the wishlist in insertion order.
func (s *service) Items(ctx context.Context) []Item {
	return state.Load[Item](ctx, s.store, state.NamespaceWishlist)
}

// Contains reports membership for the product id.
func (s *service) Contains(ctx context.Context, id int) bool {
	for _, item := range s.Items(ctx) {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Toggle flips the product's membership and reports whether it ended up in
// the list. New entries snapshot the product's display fields.
func (s *service) Toggle(ctx context.Context, product catalog.Product) (bool, error) {
	items := s.Items(ctx)
	for i := range items {
		if items[i].ID == product.ID {
			return false, s.store.Save(ctx, state.NamespaceWishlist, append(items[:i:i], items[i+1:]...))
		}
	}

	items = append(items, Item{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Category: product.Category,
	})
	return true, s.store.Save(ctx, state.NamespaceWishlist, items)
}

// Remove deletes the matching entry; absent ids are a silent no-op.
func (s *service) Remove(ctx context.Context, id int) error {
	items := s.Items(ctx)
	for i := range items {
		if items[i].ID == id {
			return s.store.Save(ctx, state.NamespaceWishlist, append(items[:i:i], items[i+1:]...))
		}
	}
	return nil
}

// MoveToCart adds the saved item to the cart, then drops it from the
// wishlist. The cart write must commit first: if it fails the wishlist is
// left untouched, so the item is never lost between the two collections.
func (s *service) MoveToCart(ctx context.Context, id int) error {
	items := s.Items(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}

		product := catalog.Product{
			ID:       items[i].ID,
			Name:     items[i].Name,
			Price:    items[i].Price,
			Image:    items[i].Image,
			Category: items[i].Category,
		}
		if err := s.cart.AddOrIncrement(ctx, product, 1); err != nil {
			return err
		}
		return s.store.Save(ctx, state.NamespaceWishlist, append(items[:i:i], items[i+1:]...))
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
}
