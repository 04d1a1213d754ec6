package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
)

// DefaultTab is the tab created when a table is created without any.
const DefaultTab = "Sheet1"

// CreateTable creates a table with the given tabs under parentID. Each tab's
// header, when present, becomes its first row.
func (s *SQLiteStore) CreateTable(ctx context.Context, parentID, name string, tabs []service.TabSpec) (string, error) {
	if err := validateString(name, "name"); err != nil {
		return "", err
	}
	if len(tabs) == 0 {
		tabs = []service.TabSpec{{Name: DefaultTab}}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.requireFolder(ctx, tx, parentID); err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := s.now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tables (id, parent_id, name, created_at) VALUES (?, ?, ?, ?)`,
		id, nullable(parentID), name, now); err != nil {
		return "", fmt.Errorf("failed to create table %q: %w", name, err)
	}

	for i, tab := range tabs {
		if err := validateString(tab.Name, "tab name"); err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO table_tabs (table_id, name, position) VALUES (?, ?, ?)`,
			id, tab.Name, i); err != nil {
			return "", fmt.Errorf("failed to create tab %q: %w", tab.Name, err)
		}
		if len(tab.Header) == 0 {
			continue
		}
		if err := insertRow(ctx, tx, id, tab.Name, 1, tab.Header, now); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit table %q: %w", name, err)
	}

	s.logger.Debug("created table", "id", id, "name", name, "tabs", len(tabs))
	return id, nil
}

// ReadRows returns the cells of rng in tableID. Trailing empty cells are
// dropped from each row.
func (s *SQLiteStore) ReadRows(ctx context.Context, tableID, rng string) ([][]string, error) {
	r, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}
	if err := s.requireTab(ctx, s.db, tableID, r.Tab); err != nil {
		return nil, err
	}

	query := `SELECT cells FROM table_rows WHERE table_id = ? AND tab = ? AND row_num >= ?`
	args := []any{tableID, r.Tab, r.StartRow}
	if r.EndRow > 0 {
		query += ` AND row_num <= ?`
		args = append(args, r.EndRow)
	}
	query += ` ORDER BY row_num`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		out = append(out, sliceColumns(cells, r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// AppendRow writes cells to the row after the last one in rng's tab,
// starting at the range's first column.
func (s *SQLiteStore) AppendRow(ctx context.Context, tableID, rng string, cells []string) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: cells", ErrEmptySlice)
	}
	r, err := ParseRange(rng)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.requireTab(ctx, tx, tableID, r.Tab); err != nil {
		return err
	}

	var last int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_num), 0) FROM table_rows WHERE table_id = ? AND tab = ?`,
		tableID, r.Tab).Scan(&last); err != nil {
		return fmt.Errorf("failed to find last row: %w", err)
	}

	row := make([]string, r.StartCol, r.StartCol+len(cells))
	row = append(row, cells...)
	if err := insertRow(ctx, tx, tableID, r.Tab, last+1, row, s.now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) requireTab(ctx context.Context, q queryer, tableID, tab string) error {
	var name string
	err := q.QueryRowContext(ctx,
		`SELECT name FROM table_tabs WHERE table_id = ? AND name = ?`, tableID, tab).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("table %s tab %s: %w", tableID, tab, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up table %s: %w", tableID, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRow(ctx context.Context, tx execer, tableID, tab string, rowNum int, cells []string, at any) error {
	raw, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO table_rows (table_id, tab, row_num, cells, created_at) VALUES (?, ?, ?, ?, ?)`,
		tableID, tab, rowNum, string(raw), at); err != nil {
		return fmt.Errorf("failed to insert row %d: %w", rowNum, err)
	}
	return nil
}

// sliceColumns cuts cells down to the range's columns and drops trailing
// empty cells, the same shape the Sheets API returns.
func sliceColumns(cells []string, r Range) []string {
	if r.StartCol >= len(cells) {
		return []string{}
	}
	end := len(cells)
	if w := r.Width(); w >= 0 && r.StartCol+w < end {
		end = r.StartCol + w
	}
	out := cells[r.StartCol:end]
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return append([]string{}, out...)
}
