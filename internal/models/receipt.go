package models

import "github.com/mmynk/salestax/internal/calculator"

// PriceBillRequest asks the service to price a shopping bill.
type PriceBillRequest struct {
	// Items is decoded without a schema so the calculator can report
	// type errors field by field.
	Items any `json:"items"`

	// RatesVersion selects a stored rate table. Empty means the server default.
	RatesVersion string `json:"rates_version,omitempty"`
}

// PricedLine is one line of a priced bill.
type PricedLine struct {
	Name         string `json:"name"`
	Count        int64  `json:"count"`
	Imported     bool   `json:"imported"`
	TaxCategory  string `json:"tax_category"`
	UnitTaxRate  string `json:"unit_tax_rate"`
	UnitExclTax  string `json:"unit_excl_tax"`
	UnitTax      string `json:"unit_tax"`
	UnitInclTax  string `json:"unit_incl_tax"`
	TotalTax     string `json:"total_tax"`
	ExclTaxTotal string `json:"excl_tax_total"`
	InclTaxTotal string `json:"incl_tax_total"`
	Text         string `json:"text"`
}

// PriceBillResponse is the priced receipt.
type PriceBillResponse struct {
	ReceiptID    string       `json:"receipt_id"`
	RatesVersion string       `json:"rates_version"`
	Lines        []PricedLine `json:"lines"`
	TaxSum       string       `json:"tax_sum"`
	GrandTotal   string       `json:"grand_total"`
	Text         string       `json:"text"`
}

// NewPricedLine converts a line item into its wire form.
func NewPricedLine(item *calculator.LineItem) PricedLine {
	return PricedLine{
		Name:         item.Name(),
		Count:        item.Count(),
		Imported:     item.Imported(),
		TaxCategory:  string(item.Category()),
		UnitTaxRate:  item.UnitTaxRate().String(),
		UnitExclTax:  item.UnitPrice().String(),
		UnitTax:      item.UnitTax().StringFixed(2),
		UnitInclTax:  item.UnitInclTax().StringFixed(2),
		TotalTax:     item.TotalTax().StringFixed(2),
		ExclTaxTotal: item.ExclTaxTotal().StringFixed(2),
		InclTaxTotal: item.InclTaxTotal().StringFixed(2),
		Text:         item.String(),
	}
}

// GetRatesRequest asks for a stored rate table.
type GetRatesRequest struct {
	Version string `json:"version,omitempty"`
}

// GetRatesResponse lists a rate table's rates keyed by category.
type GetRatesResponse struct {
	Version         string            `json:"version"`
	Rates           map[string]string `json:"rates"`
	ImportSurcharge string            `json:"import_surcharge"`
	Versions        []string          `json:"versions"`
}
