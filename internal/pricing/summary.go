// Package pricing turns a cart snapshot into a priced order summary. The
// computation is pure: identical cart contents always yield an identical
// summary, and no rounding happens during accumulation — presentation layers
// round to two decimals when rendering.
package pricing

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.NewFromInt(10)
	taxRate               = decimal.RequireFromString("0.08")
	bulkThreshold         = decimal.NewFromInt(200)
	bulkRate              = decimal.RequireFromString("0.05")
)

const (
	freeShippingLabel = "Free Shipping"
	bulkDiscountLabel = "Bulk Purchase Discount (5%)"
)

// Line is one priced cart entry.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// DiscountLine is a named deduction, always a positive amount to subtract.
type DiscountLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the computed breakdown of a cart. It is never persisted.
type Summary struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Discounts  []DiscountLine  `json:"discounts"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// ComputeSummary prices the provided lines:
//
//   - shipping is a flat 10 and waived once the subtotal reaches 100
//     (boundary inclusive);
//   - tax is 8% of the pre-discount subtotal;
//   - discount rules trigger independently: the waived shipping is credited
//     back as a visible "Free Shipping" line (the order was never charged for
//     it, the line exists to make the savings visible), and subtotals of 200
//     or more earn a 5% bulk discount.
func ComputeSummary(lines []Line) Summary {
	subtotal := decimal.Zero
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate)

	discounts := []DiscountLine{}
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		discounts = append(discounts, DiscountLine{Name: freeShippingLabel, Amount: flatShippingFee})
	}
	if subtotal.GreaterThanOrEqual(bulkThreshold) {
		discounts = append(discounts, DiscountLine{Name: bulkDiscountLabel, Amount: subtotal.Mul(bulkRate)})
	}

	totalDiscount := decimal.Zero
	for _, discount := range discounts {
		totalDiscount = totalDiscount.Add(discount.Amount)
	}

	return Summary{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		Discounts:  discounts,
		GrandTotal: subtotal.Sub(totalDiscount).Add(shipping).Add(tax),
	}
}

// TotalSavings sums the discount lines.
func (s Summary) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, discount := range s.Discounts {
		total = total.Add(discount.Amount)
	}
	return total
}
