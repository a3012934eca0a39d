// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/salestax/internal/calculator"
	"github.com/mmynk/salestax/internal/models"
)

// StandardVersion names the rate table seeded from calculator.StandardRates.
const StandardVersion = "standard"

// ErrNotFound is returned when a requested rate table version does not exist.
var ErrNotFound = errors.New("rate table not found")

// RateStore defines the interface for rate table storage operations.
// Only tax configuration is stored; bills are never persisted.
type RateStore interface {
	// SaveRates stores rates under version, replacing any previous table with
	// the same version. The rates must pass calculator.RateTable.Validate.
	SaveRates(ctx context.Context, version string, rates calculator.RateTable) (*models.RateTable, error)

	// GetRates retrieves the table stored under version.
	// Returns an error wrapping ErrNotFound if the version is unknown.
	GetRates(ctx context.Context, version string) (*models.RateTable, error)

	// ListVersions returns all stored versions in alphabetical order.
	ListVersions(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
