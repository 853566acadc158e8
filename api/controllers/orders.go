package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/internal/orders"
	"github.com/threadline/storefront/pkg/logger"
)

// OrdersList returns the order history, newest first.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// OrderDetail returns one historical order snapshot.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.Get(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
