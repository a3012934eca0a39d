package calculator

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// RawLineItem carries line item fields exactly as they arrived from an untyped
// source such as a JSON request decoded with UseNumber.
type RawLineItem struct {
	Name        any `json:"name"`
	Count       any `json:"count"`
	UnitExclTax any `json:"unit_excl_tax"`
	Imported    any `json:"imported"`
	TaxCategory any `json:"tax_category,omitempty"`
}

// LineItemFromRaw validates raw and builds a line item priced with rates.
// Checks run in order: price, count, tax category, imported flag.
func LineItemFromRaw(raw RawLineItem, rates RateTable) (*LineItem, error) {
	price, err := decodePrice(raw.UnitExclTax)
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, invalidValue("unit_excl_tax", "the item price without taxes must be a positive number")
	}

	count, err := decodeCount(raw.Count)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, invalidValue("count", "the item count must be a positive integer")
	}

	category, err := decodeCategory(raw.TaxCategory)
	if err != nil {
		return nil, err
	}

	imported, ok := raw.Imported.(bool)
	if !ok {
		return nil, invalidType("imported", "the imported parameter must be a boolean flag")
	}

	return NewLineItemWithRates(decodeName(raw.Name), count, price, imported, category, rates)
}

// BillFromRaw validates an untyped item sequence and builds a bill.
// Accepted sequences are []*LineItem, []RawLineItem and []any whose elements
// are *LineItem, RawLineItem or JSON objects.
func BillFromRaw(v any, rates RateTable) (*Bill, error) {
	var elems []any
	switch seq := v.(type) {
	case []*LineItem:
		return NewBill(seq)
	case []RawLineItem:
		elems = make([]any, len(seq))
		for i := range seq {
			elems[i] = seq[i]
		}
	case []any:
		elems = seq
	default:
		return nil, invalidType("product_list", "the product list must be a list of line items")
	}
	if len(elems) == 0 {
		return nil, invalidValue("product_list", "the product list must contain line items")
	}

	items := make([]*LineItem, len(elems))
	for i, elem := range elems {
		item, err := lineItemFromElement(elem, rates)
		if err != nil {
			return nil, fmt.Errorf("product_list element %d: %w", i, err)
		}
		items[i] = item
	}
	return NewBill(items)
}

func lineItemFromElement(elem any, rates RateTable) (*LineItem, error) {
	switch e := elem.(type) {
	case *LineItem:
		if e == nil || !e.valid {
			break
		}
		return e, nil
	case RawLineItem:
		return LineItemFromRaw(e, rates)
	case map[string]any:
		return LineItemFromRaw(RawLineItem{
			Name:        e["name"],
			Count:       e["count"],
			UnitExclTax: e["unit_excl_tax"],
			Imported:    e["imported"],
			TaxCategory: e["tax_category"],
		}, rates)
	}
	return nil, invalidType("product_list", "the product list must only contain line items")
}

func decodePrice(v any) (decimal.Decimal, error) {
	switch p := v.(type) {
	case decimal.Decimal:
		return p, nil
	case json.Number:
		d, err := decimal.NewFromString(p.String())
		if err == nil {
			return d, nil
		}
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return decimal.Zero, invalidValue("unit_excl_tax", "the price without taxes must be a finite number")
		}
		return decimal.NewFromFloat(p), nil
	case float32:
		if f := float64(p); math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, invalidValue("unit_excl_tax", "the price without taxes must be a finite number")
		}
		return decimal.NewFromFloat32(p), nil
	case int:
		return decimal.NewFromInt(int64(p)), nil
	case int32:
		return decimal.NewFromInt32(p), nil
	case int64:
		return decimal.NewFromInt(p), nil
	}
	return decimal.Zero, invalidType("unit_excl_tax", "the price without taxes must be an integer or a real number")
}

func decodeCount(v any) (int64, error) {
	switch c := v.(type) {
	case int:
		return int64(c), nil
	case int32:
		return int64(c), nil
	case int64:
		return c, nil
	case json.Number:
		if n, err := c.Int64(); err == nil {
			return n, nil
		}
	}
	return 0, invalidType("count", "the item count must be a positive integer")
}

func decodeCategory(v any) (Category, error) {
	switch c := v.(type) {
	case nil:
		return DefaultCategory, nil
	case Category:
		return ParseCategory(string(c))
	case string:
		return ParseCategory(c)
	}
	return "", invalidValue("tax_category", "supported tax categories are "+categoryList())
}

func decodeName(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	}
	return fmt.Sprint(v)
}
