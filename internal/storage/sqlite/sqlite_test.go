package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/salestax/internal/calculator"
	"github.com/mmynk/salestax/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "salestax-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("New seeds the standard table", func(t *testing.T) {
		table, err := store.GetRates(ctx, storage.StandardVersion)
		if err != nil {
			t.Fatalf("GetRates failed: %v", err)
		}
		if table.ID == "" {
			t.Error("Expected table ID to be set")
		}
		if len(table.Rates) != len(calculator.StandardRates()) {
			t.Fatalf("Rates count mismatch: got %d, want %d", len(table.Rates), len(calculator.StandardRates()))
		}
		for c, want := range calculator.StandardRates() {
			if !table.Rates[c].Equal(want) {
				t.Errorf("Rate for %s: got %s, want %s", c, table.Rates[c], want)
			}
		}
	})

	t.Run("SaveRates round-trips exact decimals", func(t *testing.T) {
		rates := calculator.StandardRates()
		rates[calculator.Food] = decimal.RequireFromString("5.5")

		saved, err := store.SaveRates(ctx, "reduced-food", rates)
		if err != nil {
			t.Fatalf("SaveRates failed: %v", err)
		}
		if saved.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		retrieved, err := store.GetRates(ctx, "reduced-food")
		if err != nil {
			t.Fatalf("GetRates failed: %v", err)
		}
		if retrieved.ID != saved.ID {
			t.Errorf("ID mismatch: got %s, want %s", retrieved.ID, saved.ID)
		}
		if got := retrieved.Rates[calculator.Food].String(); got != "5.5" {
			t.Errorf("Food rate: got %s, want 5.5", got)
		}
	})

	t.Run("SaveRates replaces an existing version", func(t *testing.T) {
		first := calculator.StandardRates()
		if _, err := store.SaveRates(ctx, "replace-me", first); err != nil {
			t.Fatalf("SaveRates failed: %v", err)
		}

		second := calculator.StandardRates()
		second[calculator.Others] = decimal.NewFromInt(20)
		if _, err := store.SaveRates(ctx, "replace-me", second); err != nil {
			t.Fatalf("SaveRates failed: %v", err)
		}

		retrieved, err := store.GetRates(ctx, "replace-me")
		if err != nil {
			t.Fatalf("GetRates failed: %v", err)
		}
		if !retrieved.Rates[calculator.Others].Equal(decimal.NewFromInt(20)) {
			t.Errorf("Others rate: got %s, want 20", retrieved.Rates[calculator.Others])
		}
		if len(retrieved.Rates) != len(calculator.StandardRates()) {
			t.Errorf("Rates count: got %d, want %d", len(retrieved.Rates), len(calculator.StandardRates()))
		}
	})

	t.Run("SaveRates rejects invalid tables", func(t *testing.T) {
		incomplete := calculator.RateTable{calculator.Others: decimal.NewFromInt(10)}
		if _, err := store.SaveRates(ctx, "incomplete", incomplete); err == nil {
			t.Error("Expected error for incomplete table")
		}
		if _, err := store.SaveRates(ctx, "  ", calculator.StandardRates()); err == nil {
			t.Error("Expected error for empty version")
		}
	})

	t.Run("GetRates returns ErrNotFound for unknown version", func(t *testing.T) {
		_, err := store.GetRates(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListVersions is sorted", func(t *testing.T) {
		versions, err := store.ListVersions(ctx)
		if err != nil {
			t.Fatalf("ListVersions failed: %v", err)
		}
		want := []string{"reduced-food", "replace-me", storage.StandardVersion}
		if len(versions) != len(want) {
			t.Fatalf("ListVersions: got %v, want %v", versions, want)
		}
		for i := range want {
			if versions[i] != want[i] {
				t.Errorf("ListVersions[%d]: got %s, want %s", i, versions[i], want[i])
			}
		}
	})
}

func TestNew_ReopenKeepsTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rates.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	rates := calculator.StandardRates()
	rates[calculator.Book] = decimal.NewFromInt(3)
	if _, err := store.SaveRates(ctx, storage.StandardVersion, rates); err != nil {
		t.Fatalf("SaveRates failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	table, err := reopened.GetRates(ctx, storage.StandardVersion)
	if err != nil {
		t.Fatalf("GetRates failed: %v", err)
	}
	if !table.Rates[calculator.Book].Equal(decimal.NewFromInt(3)) {
		t.Errorf("Seeding overwrote saved standard table: book rate %s", table.Rates[calculator.Book])
	}
}
