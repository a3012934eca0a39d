package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bill is an immutable, ordered aggregate of line items.
// TaxSum and GrandTotal are computed once when the bill is built.
type Bill struct {
	items      []*LineItem
	taxSum     decimal.Decimal
	exclTaxSum decimal.Decimal
	grandTotal decimal.Decimal
}

// NewBill aggregates items in order. items must be non-empty and contain no nil entries.
func NewBill(items []*LineItem) (*Bill, error) {
	if len(items) == 0 {
		return nil, invalidValue("product_list", "the product list must contain line items")
	}

	b := &Bill{items: make([]*LineItem, len(items))}
	copy(b.items, items)

	for i, item := range b.items {
		if item == nil || !item.valid {
			return nil, invalidType("product_list",
				fmt.Sprintf("element %d is not a constructed line item", i))
		}
		b.taxSum = b.taxSum.Add(item.TotalTax())
		b.exclTaxSum = b.exclTaxSum.Add(item.ExclTaxTotal())
	}
	b.grandTotal = b.exclTaxSum.Add(b.taxSum)

	return b, nil
}

// Items returns the bill's line items in display order.
func (b *Bill) Items() []*LineItem {
	out := make([]*LineItem, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of line items.
func (b *Bill) Len() int { return len(b.items) }

// TaxSum is the sum of every item's total tax.
func (b *Bill) TaxSum() decimal.Decimal { return b.taxSum }

// ExclTaxSum is the sum of every item's pre-tax total.
func (b *Bill) ExclTaxSum() decimal.Decimal { return b.exclTaxSum }

// GrandTotal is ExclTaxSum plus TaxSum.
func (b *Bill) GrandTotal() decimal.Decimal { return b.grandTotal }

// String renders the bill as a multi-line receipt using DefaultLabels.
func (b *Bill) String() string {
	return b.Render(DefaultLabels)
}

// Render renders the bill as a multi-line receipt using l.
func (b *Bill) Render(l Labels) string {
	lines := make([]string, 0, len(b.items)+5)
	lines = append(lines, l.Header)
	for _, item := range b.items {
		lines = append(lines, item.Render(l))
	}
	lines = append(lines,
		l.TaxSum+" : "+b.taxSum.StringFixed(2),
		l.Total+" : "+b.grandTotal.StringFixed(2),
		l.Separator,
		"",
	)
	return strings.Join(lines, "\n")
}
