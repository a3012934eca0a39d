// Package sqlite provides a SQLite-backed implementation of the storage.RateStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/salestax/internal/calculator"
	"github.com/mmynk/salestax/internal/models"
	"github.com/mmynk/salestax/internal/storage"
)

// Ensure SQLiteStore implements storage.RateStore
var _ storage.RateStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.RateStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories, runs migrations, and seeds the
// standard rate table if it is missing.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seedStandard(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) seedStandard(ctx context.Context) error {
	_, err := s.GetRates(ctx, storage.StandardVersion)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if _, err := s.SaveRates(ctx, storage.StandardVersion, calculator.StandardRates()); err != nil {
		return fmt.Errorf("failed to seed standard rates: %w", err)
	}
	return nil
}

// SaveRates persists a rate table, replacing any table with the same version.
func (s *SQLiteStore) SaveRates(ctx context.Context, version string, rates calculator.RateTable) (*models.RateTable, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("rate table version cannot be empty")
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	table := &models.RateTable{
		ID:        uuid.New().String(),
		Version:   version,
		Rates:     rates.Clone(),
		CreatedAt: time.Now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so rates are removed explicitly
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM rates WHERE table_id IN (SELECT id FROM rate_tables WHERE version = ?)",
		version,
	); err != nil {
		return nil, fmt.Errorf("failed to replace rates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM rate_tables WHERE version = ?", version); err != nil {
		return nil, fmt.Errorf("failed to replace rate table: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rate_tables (id, version, created_at) VALUES (?, ?, ?)",
		table.ID, table.Version, table.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rate table: %w", err)
	}

	for category, rate := range table.Rates {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO rates (table_id, category, rate) VALUES (?, ?, ?)",
			table.ID, string(category), rate.String(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert rate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return table, nil
}

// GetRates retrieves a rate table by version.
func (s *SQLiteStore) GetRates(ctx context.Context, version string) (*models.RateTable, error) {
	table := &models.RateTable{Rates: make(calculator.RateTable)}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, version, created_at FROM rate_tables WHERE version = ?",
		version,
	).Scan(&table.ID, &table.Version, &table.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, version)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rate table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, rate FROM rates WHERE table_id = ? ORDER BY category",
		table.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, rate string
		if err := rows.Scan(&category, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("invalid stored rate for %s: %w", category, err)
		}
		table.Rates[calculator.Category(category)] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}

	return table, nil
}

// ListVersions returns all stored rate table versions.
func (s *SQLiteStore) ListVersions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT version FROM rate_tables ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tables: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate versions: %w", err)
	}
	return versions, nil
}
