// Package orders serves the historical order snapshots shown on the order
// history pages. Orders are frozen at placement time: amounts and discount
// lines are stored values and are never recomputed against current pricing
// rules.
package orders

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadline/storefront/internal/pricing"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
)

// Status is an order's fulfillment state.
type Status string

const (
	StatusPlaced     Status = "placed"
	StatusProcessing Status = "processing"
	StatusPacked     Status = "packed"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// LineItem is one purchased product within an order.
type LineItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// TimelineEvent is one fulfillment step.
type TimelineEvent struct {
	Status  Status    `json:"status"`
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Address is the delivery destination captured at checkout.
type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Order is a complete historical snapshot.
type Order struct {
	ID              string                 `json:"id"`
	Date            time.Time              `json:"date"`
	Status          Status                 `json:"status"`
	Items           []LineItem             `json:"items"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Shipping        decimal.Decimal        `json:"shipping"`
	Tax             decimal.Decimal        `json:"tax"`
	Discounts       []pricing.DiscountLine `json:"discounts"`
	Total           decimal.Decimal        `json:"total"`
	Timeline        []TimelineEvent        `json:"timeline"`
	ShippingAddress Address                `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Service reads the order history.
type Service interface {
	List(ctx context.Context) []Order
	Get(ctx context.Context, id string) (Order, error)
}

type service struct {
	orders map[string]Order
}

// NewService builds the order service over the seeded history.
func NewService() Service {
	seeded := seedOrders()
	byID := make(map[string]Order, len(seeded))
	for _, order := range seeded {
		byID[order.ID] = order
	}
	return &service{orders: byID}
}

// List returns all orders, newest first.
func (s *service) List(ctx context.Context) []Order {
	out := make([]Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Get returns the order with the given id.
func (s *service) Get(ctx context.Context, id string) (Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func seedOrders() []Order {
	address := Address{
		Name:    "John Doe",
		Street:  "123 Main St",
		City:    "New York",
		State:   "NY",
		Zip:     "10001",
		Country: "USA",
	}

	return []Order{
		{
			ID:     "ORD001",
			Date:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			Status: StatusDelivered,
			Items: []LineItem{
				{ID: 1, Name: "Classic T-Shirt", Price: money("19.99"), Quantity: 2},
				{ID: 2, Name: "Slim Fit Jeans", Price: money("49.99"), Quantity: 1},
				{ID: 4, Name: "Running Shoes", Price: money("79.99"), Quantity: 1},
			},
			Subtotal: money("169.97"),
			Shipping: money("10.00"),
			Tax:      money("13.60"),
			Discounts: []pricing.DiscountLine{
				{Name: "Bulk Purchase Discount (5%)", Amount: money("8.50")},
			},
			Total: money("185.07"),
			Timeline: []TimelineEvent{
				{Status: StatusPlaced, At: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), Message: "Order placed successfully"},
				{Status: StatusPacked, At: time.Date(2024, time.March, 15, 11, 30, 0, 0, time.UTC), Message: "Order packed and ready for shipping"},
				{Status: StatusShipped, At: time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC), Message: "Order shipped via Express Delivery"},
				{Status: StatusDelivered, At: time.Date(2024, time.March, 15, 17, 0, 0, 0, time.UTC), Message: "Order delivered successfully"},
			},
			ShippingAddress: address,
			PaymentMethod:   "Credit Card (**** 1234)",
		},
		{
			ID:     "ORD002",
			Date:   time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
			Status: StatusShipped,
			Items: []LineItem{
				{ID: 4, Name: "Running Shoes", Price: money("79.99"), Quantity: 1},
				{ID: 3, Name: "Floral Dress", Price: money("39.99"), Quantity: 1},
			},
			Subtotal: money("119.98"),
			Shipping: money("0.00"),
			Tax:      money("9.60"),
			Discounts: []pricing.DiscountLine{
				{Name: "Free Shipping", Amount: money("10.00")},
			},
			Total: money("119.58"),
			Timeline: []TimelineEvent{
				{Status: StatusPlaced, At: time.Date(2025, time.February, 10, 8, 15, 0, 0, time.UTC), Message: "Order placed successfully"},
				{Status: StatusPacked, At: time.Date(2025, time.February, 10, 13, 45, 0, 0, time.UTC), Message: "Order packed and ready for shipping"},
				{Status: StatusShipped, At: time.Date(2025, time.February, 11, 9, 0, 0, 0, time.UTC), Message: "Order shipped via Standard Delivery"},
			},
			ShippingAddress: address,
			PaymentMethod:   "Credit Card (**** 1234)",
		},
		{
			ID:     "ORD003",
			Date:   time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC),
			Status: StatusProcessing,
			Items: []LineItem{
				{ID: 2, Name: "Slim Fit Jeans", Price: money("49.99"), Quantity: 1},
			},
			Subtotal:  money("49.99"),
			Shipping:  money("10.00"),
			Tax:       money("4.00"),
			Discounts: []pricing.DiscountLine{},
			Total:     money("63.99"),
			Timeline: []TimelineEvent{
				{Status: StatusPlaced, At: time.Date(2025, time.February, 5, 19, 20, 0, 0, time.UTC), Message: "Order placed successfully"},
			},
			ShippingAddress: address,
			PaymentMethod:   "Credit Card (**** 1234)",
		},
	}
}
