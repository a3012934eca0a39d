package calculator

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func validRaw() RawLineItem {
	return RawLineItem{
		Name:        "test",
		Count:       json.Number("1"),
		UnitExclTax: json.Number("1"),
		Imported:    false,
	}
}

func TestLineItemFromRaw_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *RawLineItem)
		wantErr   error
		wantField string
	}{
		{name: "string price", mutate: func(r *RawLineItem) { r.UnitExclTax = "12" }, wantErr: ErrInvalidType, wantField: "unit_excl_tax"},
		{name: "bool price", mutate: func(r *RawLineItem) { r.UnitExclTax = true }, wantErr: ErrInvalidType, wantField: "unit_excl_tax"},
		{name: "missing price", mutate: func(r *RawLineItem) { r.UnitExclTax = nil }, wantErr: ErrInvalidType, wantField: "unit_excl_tax"},
		{name: "zero price", mutate: func(r *RawLineItem) { r.UnitExclTax = json.Number("0") }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "negative price", mutate: func(r *RawLineItem) { r.UnitExclTax = -1.5 }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "NaN price", mutate: func(r *RawLineItem) { r.UnitExclTax = math.NaN() }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "infinite price", mutate: func(r *RawLineItem) { r.UnitExclTax = math.Inf(1) }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "negative infinite price", mutate: func(r *RawLineItem) { r.UnitExclTax = math.Inf(-1) }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "infinite float32 price", mutate: func(r *RawLineItem) { r.UnitExclTax = float32(math.Inf(1)) }, wantErr: ErrInvalidValue, wantField: "unit_excl_tax"},
		{name: "fractional count", mutate: func(r *RawLineItem) { r.Count = json.Number("1.5") }, wantErr: ErrInvalidType, wantField: "count"},
		{name: "float count", mutate: func(r *RawLineItem) { r.Count = 2.0 }, wantErr: ErrInvalidType, wantField: "count"},
		{name: "string count", mutate: func(r *RawLineItem) { r.Count = "2" }, wantErr: ErrInvalidType, wantField: "count"},
		{name: "zero count", mutate: func(r *RawLineItem) { r.Count = json.Number("0") }, wantErr: ErrInvalidValue, wantField: "count"},
		{name: "unknown category", mutate: func(r *RawLineItem) { r.TaxCategory = "toys" }, wantErr: ErrInvalidValue, wantField: "tax_category"},
		{name: "numeric category", mutate: func(r *RawLineItem) { r.TaxCategory = json.Number("3") }, wantErr: ErrInvalidValue, wantField: "tax_category"},
		{name: "numeric imported flag", mutate: func(r *RawLineItem) { r.Imported = json.Number("1") }, wantErr: ErrInvalidType, wantField: "imported"},
		{name: "string imported flag", mutate: func(r *RawLineItem) { r.Imported = "true" }, wantErr: ErrInvalidType, wantField: "imported"},
		{name: "missing imported flag", mutate: func(r *RawLineItem) { r.Imported = nil }, wantErr: ErrInvalidType, wantField: "imported"},
		{
			name: "price checked first",
			mutate: func(r *RawLineItem) {
				r.UnitExclTax = "x"
				r.Count = "y"
				r.Imported = 1
			},
			wantErr:   ErrInvalidType,
			wantField: "unit_excl_tax",
		},
		{
			name: "category checked before imported",
			mutate: func(r *RawLineItem) {
				r.TaxCategory = "toys"
				r.Imported = 1
			},
			wantErr:   ErrInvalidValue,
			wantField: "tax_category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, err := LineItemFromRaw(raw, StandardRates())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LineItemFromRaw() error = %v, want %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestLineItemFromRaw_Coercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawLineItem
		wantName string
		wantCat  Category
	}{
		{
			name:     "defaults to others",
			raw:      RawLineItem{Name: "CD", Count: 1, UnitExclTax: 14.99, Imported: false},
			wantName: "CD",
			wantCat:  Others,
		},
		{
			name:     "numeric name",
			raw:      RawLineItem{Name: json.Number("42"), Count: int64(1), UnitExclTax: 1, Imported: true, TaxCategory: "food"},
			wantName: "42",
			wantCat:  Food,
		},
		{
			name:     "missing name",
			raw:      RawLineItem{Count: int32(1), UnitExclTax: json.Number("0.01"), Imported: false, TaxCategory: Book},
			wantName: "",
			wantCat:  Book,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := LineItemFromRaw(tt.raw, StandardRates())
			if err != nil {
				t.Fatalf("LineItemFromRaw() error = %v", err)
			}
			if item.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", item.Name(), tt.wantName)
			}
			if item.Category() != tt.wantCat {
				t.Errorf("Category() = %q, want %q", item.Category(), tt.wantCat)
			}
		})
	}
}

func TestBillFromRaw_Validation(t *testing.T) {
	valid := mustItem(t, "test", 1, "1", false, Others)

	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{name: "not iterable", input: 123, wantErr: ErrInvalidType},
		{name: "string", input: "123", wantErr: ErrInvalidType},
		{name: "nil", input: nil, wantErr: ErrInvalidType},
		{name: "empty", input: []any{}, wantErr: ErrInvalidValue},
		{name: "empty typed", input: []*LineItem{}, wantErr: ErrInvalidValue},
		{name: "invalid elements", input: []any{valid, "123", 1}, wantErr: ErrInvalidType},
		{name: "nil item", input: []any{(*LineItem)(nil)}, wantErr: ErrInvalidType},
		{name: "zero-value item", input: []any{&LineItem{}}, wantErr: ErrInvalidType},
		{name: "zero-value typed item", input: []*LineItem{{}}, wantErr: ErrInvalidType},
		{name: "invalid object", input: []any{map[string]any{"count": json.Number("1")}}, wantErr: ErrInvalidType},
		{name: "invalid raw", input: []RawLineItem{{Count: json.Number("0"), UnitExclTax: 1, Imported: false}}, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BillFromRaw(tt.input, StandardRates())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BillFromRaw() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBillFromRaw_JSON(t *testing.T) {
	payload := `[
		{"name": "book", "count": 1, "unit_excl_tax": 12.49, "imported": false, "tax_category": "book"},
		{"name": "music CD", "count": 1, "unit_excl_tax": 14.99, "imported": false},
		{"name": "chocolate bar", "count": 1, "unit_excl_tax": 0.85, "imported": false, "tax_category": "food"}
	]`

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	bill, err := BillFromRaw(v, StandardRates())
	if err != nil {
		t.Fatalf("BillFromRaw() error = %v", err)
	}
	if got := bill.TaxSum().StringFixed(2); got != "1.50" {
		t.Errorf("TaxSum() = %s, want 1.50", got)
	}
	if got := bill.GrandTotal().StringFixed(2); got != "29.83" {
		t.Errorf("GrandTotal() = %s, want 29.83", got)
	}
	if got := bill.Items()[1].String(); got != "1 music CD : 16.49" {
		t.Errorf("item String() = %q", got)
	}
}
