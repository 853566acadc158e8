package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/api/validators"
	"github.com/threadline/storefront/internal/cart"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/pricing"
	"github.com/threadline/storefront/pkg/logger"
)

type cartView struct {
	Items []cart.Item `json:"items"`
	Count int         `json:"count"`
}

type addCartItemRequest struct {
	ProductID int `json:"productId" validate:"required,min=1"`
	Quantity  int `json:"quantity" validate:"omitempty,min=1"`
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type checkoutView struct {
	Summary pricing.Summary `json:"summary"`
	Status  string          `json:"status"`
}

// CartFetch returns the current cart contents and the badge count.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Items(r.Context())
		count := 0
		for _, item := range items {
			count += item.Quantity
		}
		responses.WriteSuccess(w, cartView{Items: items, Count: count})
	}
}

// CartAdd resolves the product and merges it into the cart.
func CartAdd(svc cart.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.FindByID(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddOrIncrement(r.Context(), product, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartView{Items: svc.Items(r.Context()), Count: svc.Count(r.Context())})
	}
}

// CartAdjustQuantity applies a signed delta to one line's quantity.
func CartAdjustQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathInt("productId", chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetQuantityDelta(r.Context(), id, payload.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartView{Items: svc.Items(r.Context()), Count: svc.Count(r.Context())})
	}
}

// CartRemove deletes one line.
func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, cartView{Items: svc.Items(r.Context()), Count: svc.Count(r.Context())})
	}
}

// CartClear empties the cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Items: []cart.Item{}, Count: 0})
	}
}

// CartSummary returns the priced breakdown of the current cart.
func CartSummary(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}

// Checkout prices the cart, clears it, and confirms the (simulated) order.
// There is no payment capture behind this endpoint.
func Checkout(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := svc.Summary(r.Context())
		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutView{Summary: summary, Status: "confirmed"})
	}
}
