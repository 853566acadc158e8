package wishlist

import "github.com/shopspring/decimal"

// Item is one saved product. Wishlist entries carry no quantity; membership
// is the only state, and each product id appears at most once.
type Item struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}
