package cart

import "github.com/shopspring/decimal"

// Item is one persisted cart line. Name, price, and image are snapshots taken
// from the product at insertion time; later catalog changes do not touch
// existing lines. At most one item exists per product id and quantity never
// falls below 1 — removal, not a zero quantity, is the floor operation.
type Item struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}
