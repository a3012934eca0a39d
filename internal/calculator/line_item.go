package calculator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	twenty = decimal.NewFromInt(20)
	five   = decimal.NewFromInt(5)
)

// RoundUpTax rounds a tax amount up to the nearest multiple of 0.05.
// Amounts already on a multiple are returned unchanged.
// ceil(x / 0.05) * 0.05 is computed as ceil(x * 20) * 5 / 100 so no step
// divides and the result is exact.
func RoundUpTax(x decimal.Decimal) decimal.Decimal {
	return x.Mul(twenty).Ceil().Mul(five).Shift(-2)
}

// LineItem is one purchasable entry of a bill.
// Fields are fixed at construction; every derived amount is recomputed on access.
type LineItem struct {
	name      string
	count     int64
	unitPrice decimal.Decimal
	imported  bool
	category  Category
	baseRate  decimal.Decimal
	valid     bool // set only by the constructors
}

// NewLineItem builds a line item priced with the standard rate table.
func NewLineItem(name string, count int64, unitPrice decimal.Decimal, imported bool, category Category) (*LineItem, error) {
	return NewLineItemWithRates(name, count, unitPrice, imported, category, standardRates)
}

// NewLineItemWithRates builds a line item whose base rate is taken from rates.
// An empty category means DefaultCategory.
func NewLineItemWithRates(name string, count int64, unitPrice decimal.Decimal, imported bool, category Category, rates RateTable) (*LineItem, error) {
	if !unitPrice.IsPositive() {
		return nil, invalidValue("unit_excl_tax", "the item price without taxes must be a positive number")
	}
	if count < 1 {
		return nil, invalidValue("count", "the item count must be a positive integer")
	}
	if category == "" {
		category = DefaultCategory
	}
	rate, ok := rates[category]
	if !ok || !category.Valid() {
		return nil, invalidValue("tax_category", "supported tax categories are "+categoryList())
	}

	return &LineItem{
		name:      name,
		count:     count,
		unitPrice: unitPrice,
		imported:  imported,
		category:  category,
		baseRate:  rate,
		valid:     true,
	}, nil
}

func categoryList() string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (li *LineItem) Name() string               { return li.name }
func (li *LineItem) Count() int64               { return li.count }
func (li *LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }
func (li *LineItem) Imported() bool             { return li.imported }
func (li *LineItem) Category() Category         { return li.category }

// ExclTaxTotal is the pre-tax price of all units.
func (li *LineItem) ExclTaxTotal() decimal.Decimal {
	return li.unitPrice.Mul(li.countDecimal()).Round(2)
}

// UnitTaxRate is the category rate plus the import surcharge, in percentage points.
func (li *LineItem) UnitTaxRate() decimal.Decimal {
	if li.imported {
		return li.baseRate.Add(importSurcharge)
	}
	return li.baseRate
}

// UnitTax is the tax on one unit. The raw amount is rounded up to the nearest
// 0.05 first and only then to cents.
func (li *LineItem) UnitTax() decimal.Decimal {
	raw := li.unitPrice.Mul(li.UnitTaxRate()).Shift(-2)
	return RoundUpTax(raw).Round(2)
}

// TotalTax is the tax on all units.
func (li *LineItem) TotalTax() decimal.Decimal {
	return li.UnitTax().Mul(li.countDecimal()).Round(2)
}

// UnitInclTax is the price of one unit including tax.
func (li *LineItem) UnitInclTax() decimal.Decimal {
	return li.unitPrice.Add(li.UnitTax()).Round(2)
}

// InclTaxTotal is the price of all units including tax.
func (li *LineItem) InclTaxTotal() decimal.Decimal {
	return li.UnitInclTax().Mul(li.countDecimal()).Round(2)
}

// String renders the item as a receipt line using DefaultLabels.
func (li *LineItem) String() string {
	return li.Render(DefaultLabels)
}

// Render renders the item as a receipt line using l.
func (li *LineItem) Render(l Labels) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(li.count, 10))
	b.WriteByte(' ')
	b.WriteString(li.name)
	if li.imported {
		b.WriteByte(' ')
		b.WriteString(l.Imported)
	}
	b.WriteString(" : ")
	b.WriteString(li.InclTaxTotal().StringFixed(2))
	return b.String()
}

func (li *LineItem) countDecimal() decimal.Decimal {
	return decimal.NewFromInt(li.count)
}
