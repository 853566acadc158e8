// Package catalog serves the product surface that feeds cart and wishlist
// mutations. Entries are a fixed in-memory set; persisted cart/wishlist lines
// snapshot their fields at insertion time and never re-sync against it.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
)

// Product is the minimal descriptor every product-display surface hands to
// the cart and wishlist managers.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
}

// Sort orders accepted by List.
const (
	SortByName      = "name"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
)

// Filter narrows and orders a catalog listing.
type Filter struct {
	Query    string
	Category string
	SortBy   string
}

// Service exposes read access to the product catalog.
type Service interface {
	List(filter Filter) []Product
	FindByID(id int) (Product, error)
}

type service struct {
	products []Product
}

// NewService builds a catalog over the default product set.
func NewService() Service {
	return &service{products: defaultProducts()}
}

// List returns the products matching the filter, ordered by the requested
// sort (name when unspecified).
func (s *service) List(filter Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.TrimSpace(filter.Category)

	matched := make([]Product, 0, len(s.products))
	for _, product := range s.products {
		if query != "" && !strings.Contains(strings.ToLower(product.Name), query) {
			continue
		}
		if category != "" && !strings.EqualFold(category, "All") && !strings.EqualFold(product.Category, category) {
			continue
		}
		matched = append(matched, product)
	}

	switch filter.SortBy {
	case SortByPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price.LessThan(matched[j].Price)
		})
	case SortByPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[j].Price.LessThan(matched[i].Price)
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Name < matched[j].Name
		})
	}

	return matched
}

// FindByID returns the product or a not-found error.
func (s *service) FindByID(id int) (Product, error) {
	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func defaultProducts() []Product {
	const productImage = "https://images.unsplash.com/photo-1506748686214-e9df14d4d9d0"
	return []Product{
		{
			ID:          1,
			Name:        "Classic T-Shirt",
			Price:       decimal.RequireFromString("19.99"),
			Category:    "Men",
			Image:       productImage,
			Description: "A comfortable and stylish classic t-shirt perfect for everyday wear.",
			Rating:      4.5,
		},
		{
			ID:          2,
			Name:        "Slim Fit Jeans",
			Price:       decimal.RequireFromString("49.99"),
			Category:    "Men",
			Image:       productImage,
			Description: "Modern slim fit jeans with perfect stretch and comfort.",
			Rating:      4.2,
		},
		{
			ID:          3,
			Name:        "Floral Dress",
			Price:       decimal.RequireFromString("39.99"),
			Category:    "Women",
			Image:       productImage,
			Description: "Beautiful floral dress perfect for summer occasions.",
			Rating:      4.7,
		},
		{
			ID:          4,
			Name:        "Running Shoes",
			Price:       decimal.RequireFromString("79.99"),
			Category:    "Accessories",
			Image:       productImage,
			Description: "High-performance running shoes with superior comfort and support.",
			Rating:      4.4,
		},
	}
}
