package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/api/validators"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/pkg/logger"
)

// CatalogList handles product browsing with search, category, and sort
// filters.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		products := svc.List(catalog.Filter{
			Query:    validators.SanitizeString(query.Get("search"), 128),
			Category: validators.SanitizeString(query.Get("category"), 64),
			SortBy:   validators.SanitizeString(query.Get("sort"), 32),
		})
		if limit > 0 && limit < len(products) {
			products = products[:limit]
		}

		responses.WriteSuccess(w, products)
	}
}

// CatalogDetail returns a single product by id.
func CatalogDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathInt("productId", chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.FindByID(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
