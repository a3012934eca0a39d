package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Category classifies goods for the base tax rate.
type Category string

const (
	Book     Category = "book"
	Medicine Category = "medicine"
	Food     Category = "food"
	Others   Category = "others"
)

// DefaultCategory is applied when a line item does not name one.
const DefaultCategory = Others

// importSurcharge is added to the base rate of imported goods (percentage points).
var importSurcharge = decimal.NewFromInt(5)

// ImportSurcharge returns the import surcharge in percentage points.
func ImportSurcharge() decimal.Decimal {
	return importSurcharge
}

// RateTable maps each category to its base tax rate in percentage points.
type RateTable map[Category]decimal.Decimal

// standardRates is the built-in table. Callers get copies via StandardRates.
var standardRates = RateTable{
	Book:     decimal.Zero,
	Medicine: decimal.Zero,
	Food:     decimal.Zero,
	Others:   decimal.NewFromInt(10),
}

// StandardRates returns a copy of the built-in rate table.
func StandardRates() RateTable {
	return standardRates.Clone()
}

// Categories returns every known category in a stable order.
func Categories() []Category {
	cats := make([]Category, 0, len(standardRates))
	for c := range standardRates {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := standardRates[c]
	return ok
}

// Rate returns the standard base rate for c. Unknown categories have no rate.
func (c Category) Rate() decimal.Decimal {
	return standardRates[c]
}

// ParseCategory converts external input to a Category. Matching is exact.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", invalidValue("tax_category", "supported tax categories are "+categoryList())
	}
	return c, nil
}

// Validate checks that the table covers every category with a non-negative rate.
func (t RateTable) Validate() error {
	for _, c := range Categories() {
		rate, ok := t[c]
		if !ok {
			return fmt.Errorf("rate table is missing category %q", c)
		}
		if rate.IsNegative() {
			return fmt.Errorf("rate for category %q must not be negative, got %s", c, rate)
		}
	}
	for c := range t {
		if !c.Valid() {
			return fmt.Errorf("rate table has unknown category %q", c)
		}
	}
	return nil
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for c, r := range t {
		out[c] = r
	}
	return out
}
