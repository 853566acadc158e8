package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

func TestComputeSummaryBelowFreeShipping(t *testing.T) {
	t.Parallel()

	summary := ComputeSummary([]Line{
		{Price: mustDecimal(t, "19.99"), Quantity: 2},
		{Price: mustDecimal(t, "49.99"), Quantity: 1},
	})

	if !summary.Subtotal.Equal(mustDecimal(t, "89.97")) {
		t.Fatalf("unexpected subtotal: %s", summary.Subtotal)
	}
	if !summary.Shipping.Equal(mustDecimal(t, "10")) {
		t.Fatalf("expected flat shipping below threshold, got %s", summary.Shipping)
	}
	if !summary.Tax.Equal(mustDecimal(t, "7.1976")) {
		t.Fatalf("unexpected tax: %s", summary.Tax)
	}
	if len(summary.Discounts) != 0 {
		t.Fatalf("expected no discounts, got %+v", summary.Discounts)
	}
	if !summary.GrandTotal.Equal(mustDecimal(t, "107.1676")) {
		t.Fatalf("unexpected grand total: %s", summary.GrandTotal)
	}
}

func TestComputeSummaryBulkOrder(t *testing.T) {
	t.Parallel()

	summary := ComputeSummary([]Line{
		{Price: mustDecimal(t, "125.00"), Quantity: 2},
	})

	if !summary.Subtotal.Equal(mustDecimal(t, "250")) {
		t.Fatalf("unexpected subtotal: %s", summary.Subtotal)
	}
	if !summary.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", summary.Shipping)
	}
	if !summary.Tax.Equal(mustDecimal(t, "20")) {
		t.Fatalf("unexpected tax: %s", summary.Tax)
	}

	if len(summary.Discounts) != 2 {
		t.Fatalf("expected two discount lines, got %+v", summary.Discounts)
	}
	if summary.Discounts[0].Name != "Free Shipping" || !summary.Discounts[0].Amount.Equal(mustDecimal(t, "10")) {
		t.Fatalf("unexpected free shipping line: %+v", summary.Discounts[0])
	}
	if summary.Discounts[1].Name != "Bulk Purchase Discount (5%)" || !summary.Discounts[1].Amount.Equal(mustDecimal(t, "12.5")) {
		t.Fatalf("unexpected bulk discount line: %+v", summary.Discounts[1])
	}

	if !summary.TotalSavings().Equal(mustDecimal(t, "22.5")) {
		t.Fatalf("unexpected savings: %s", summary.TotalSavings())
	}
	if !summary.GrandTotal.Equal(mustDecimal(t, "247.5")) {
		t.Fatalf("unexpected grand total: %s", summary.GrandTotal)
	}
}

func TestFreeShippingBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	summary := ComputeSummary([]Line{{Price: mustDecimal(t, "100.00"), Quantity: 1}})

	if !summary.Shipping.IsZero() {
		t.Fatalf("shipping must be waived at exactly 100, got %s", summary.Shipping)
	}
	if len(summary.Discounts) != 1 || summary.Discounts[0].Name != "Free Shipping" {
		t.Fatalf("expected the free shipping credit at the boundary, got %+v", summary.Discounts)
	}

	below := ComputeSummary([]Line{{Price: mustDecimal(t, "99.99"), Quantity: 1}})
	if !below.Shipping.Equal(mustDecimal(t, "10")) {
		t.Fatalf("expected flat shipping just below threshold, got %s", below.Shipping)
	}
}

func TestComputeSummaryEmptyCart(t *testing.T) {
	t.Parallel()

	summary := ComputeSummary(nil)

	if !summary.Subtotal.IsZero() {
		t.Fatalf("unexpected subtotal: %s", summary.Subtotal)
	}
	if !summary.Shipping.Equal(mustDecimal(t, "10")) {
		t.Fatalf("empty cart still quotes flat shipping, got %s", summary.Shipping)
	}
	if !summary.GrandTotal.Equal(mustDecimal(t, "10")) {
		t.Fatalf("unexpected grand total: %s", summary.GrandTotal)
	}
}

func TestComputeSummaryIsDeterministic(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Price: mustDecimal(t, "19.99"), Quantity: 3},
		{Price: mustDecimal(t, "79.99"), Quantity: 2},
	}

	first := ComputeSummary(lines)
	second := ComputeSummary(lines)

	if !first.Subtotal.Equal(second.Subtotal) ||
		!first.Shipping.Equal(second.Shipping) ||
		!first.Tax.Equal(second.Tax) ||
		!first.GrandTotal.Equal(second.GrandTotal) {
		t.Fatalf("summaries differ: %+v vs %+v", first, second)
	}
	if len(first.Discounts) != len(second.Discounts) {
		t.Fatalf("discount lines differ: %+v vs %+v", first.Discounts, second.Discounts)
	}
	for i := range first.Discounts {
		if first.Discounts[i].Name != second.Discounts[i].Name ||
			!first.Discounts[i].Amount.Equal(second.Discounts[i].Amount) {
			t.Fatalf("discount line %d differs", i)
		}
	}
}
