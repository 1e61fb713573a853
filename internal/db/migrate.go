package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent and re-run on every
// open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Each logical sheet is one sheet_tables row holding its header, plus one
// sheet_rows row per data row. Cells are stored as a JSON array so rows of
// any width round-trip unchanged.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sheet_tables (
		name        TEXT PRIMARY KEY,
		header_json TEXT NOT NULL DEFAULT '[]',
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sheet_rows (
		table_name TEXT NOT NULL REFERENCES sheet_tables(name) ON DELETE CASCADE,
		row_index  INTEGER NOT NULL CHECK(row_index >= 0),
		cells_json TEXT NOT NULL,
		PRIMARY KEY (table_name, row_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sheet_rows_table ON sheet_rows(table_name)`,

	`ALTER TABLE sheet_tables ADD COLUMN row_count INTEGER NOT NULL DEFAULT 0`,
}
