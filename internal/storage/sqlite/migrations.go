package sqlite

import "database/sql"

// schema runs on startup to ensure tables exist.
// Rates are stored as decimal strings to keep them exact.
const schema = `
CREATE TABLE IF NOT EXISTS rate_tables (
    id TEXT PRIMARY KEY,
    version TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rates (
    table_id TEXT NOT NULL,
    category TEXT NOT NULL,
    rate TEXT NOT NULL,
    PRIMARY KEY (table_id, category),
    FOREIGN KEY (table_id) REFERENCES rate_tables(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_rates_table_id ON rates(table_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
