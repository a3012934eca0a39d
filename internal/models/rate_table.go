package models

import "github.com/mmynk/salestax/internal/calculator"

// RateTable is a versioned set of base tax rates.
type RateTable struct {
	// ID is the unique identifier for the table (UUID format).
	ID string

	// Version is the human-readable key the table is looked up by (e.g. "standard", "2026-q3").
	Version string

	// Rates maps every category to its base rate in percentage points.
	Rates calculator.RateTable

	// CreatedAt is the Unix timestamp when this version was saved.
	CreatedAt int64
}
