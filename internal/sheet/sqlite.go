package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/geopark-ops/guidelog/internal/db"
)

// SQLiteBackend keeps tables in the sheet_tables/sheet_rows schema. A table
// write deletes and re-inserts all rows inside one transaction.
type SQLiteBackend struct {
	db  db.DBTX
	uow db.UnitOfWork
}

func NewSQLiteBackend(conn db.DBTX, uow db.UnitOfWork) *SQLiteBackend {
	return &SQLiteBackend{db: conn, uow: uow}
}

func (b *SQLiteBackend) ReadTable(ctx context.Context, name string) ([]string, [][]string, error) {
	var headerJSON string
	err := b.db.QueryRowContext(ctx, `SELECT header_json FROM sheet_tables WHERE name = ?`, name).Scan(&headerJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrTableNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", name, err)
	}
	var header []string
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		return nil, nil, fmt.Errorf("decoding header of %s: %w", name, err)
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT cells_json FROM sheet_rows WHERE table_name = ? ORDER BY row_index`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rows of %s: %w", name, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, nil, fmt.Errorf("scanning row of %s: %w", name, err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, nil, fmt.Errorf("decoding row of %s: %w", name, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows of %s: %w", name, err)
	}
	return header, out, nil
}

func (b *SQLiteBackend) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("encoding header of %s: %w", name, err)
	}
	encoded := make([]string, len(rows))
	for i, r := range rows {
		cells := r
		if cells == nil {
			cells = []string{}
		}
		raw, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encoding row %d of %s: %w", i, name, err)
		}
		encoded[i] = string(raw)
	}

	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		now := time.Now().UTC().Format(time.RFC3339)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_tables (name, header_json, updated_at, row_count) VALUES (?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET header_json = excluded.header_json,
			     updated_at = excluded.updated_at, row_count = excluded.row_count`,
			name, string(headerJSON), now, len(rows)); err != nil {
			return fmt.Errorf("saving table %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE table_name = ?`, name); err != nil {
			return fmt.Errorf("clearing rows of %s: %w", name, err)
		}
		for i, cells := range encoded {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sheet_rows (table_name, row_index, cells_json) VALUES (?, ?, ?)`,
				name, i, cells); err != nil {
				return fmt.Errorf("inserting row %d of %s: %w", i, name, err)
			}
		}
		return nil
	})
}
