package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/api/validators"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/wishlist"
	"github.com/threadline/storefront/pkg/logger"
)

type wishlistView struct {
	Items []wishlist.Item `json:"items"`
}

type toggleWishlistRequest struct {
	ProductID int `json:"productId" validate:"required,min=1"`
}

type toggleWishlistView struct {
	Added bool            `json:"added"`
	Items []wishlist.Item `json:"items"`
}

// WishlistFetch returns the saved items.
func WishlistFetch(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, wishlistView{Items: svc.Items(r.Context())})
	}
}

// WishlistToggle flips membership for the product and reports the result.
func WishlistToggle(svc wishlist.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload toggleWishlistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.FindByID(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		added, err := svc.Toggle(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toggleWishlistView{Added: added, Items: svc.Items(r.Context())})
	}
}

// WishlistRemove deletes one saved item.
func WishlistRemove(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathInt("productId", chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistView{Items: svc.Items(r.Context())})
	}
}

// WishlistMoveToCart moves one saved item into the cart.
func WishlistMoveToCart(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathInt("productId", chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MoveToCart(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistView{Items: svc.Items(r.Context())})
	}
}
