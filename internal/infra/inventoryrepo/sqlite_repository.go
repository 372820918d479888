package inventoryrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/edudigital/portal/internal/domain/inventory"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS inventory_entries (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	module     TEXT NOT NULL,
	operation  TEXT NOT NULL,
	title      TEXT NOT NULL,
	category   TEXT NOT NULL,
	sub_label  TEXT NOT NULL,
	duration   TEXT NOT NULL,
	cover_url  TEXT NOT NULL,
	links      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteRepository persists entries in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLiteRepository opens (or creates) the database at path.
func OpenSQLiteRepository(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("inventory sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("inventory sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inventory sqlite: init schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new row.
func (r *SQLiteRepository) Create(ctx context.Context, entry inventory.Entry) error {
	links, err := json.Marshal(entry.Payload.Resources.Links)
	if err != nil {
		return err
	}
	meta := entry.Payload.Metadata
	_, err = r.db.ExecContext(ctx, `INSERT INTO inventory_entries
		(id, module, operation, title, category, sub_label, duration, cover_url, links, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID(), string(entry.Module), string(entry.Operation), meta.Title, meta.Category, meta.SubLabel,
		meta.Duration, entry.Payload.Resources.CoverURL, string(links),
		formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt))
	return err
}

// Update rewrites an existing row.
func (r *SQLiteRepository) Update(ctx context.Context, entry inventory.Entry) error {
	links, err := json.Marshal(entry.Payload.Resources.Links)
	if err != nil {
		return err
	}
	meta := entry.Payload.Metadata
	res, err := r.db.ExecContext(ctx, `UPDATE inventory_entries
		SET module = ?, operation = ?, title = ?, category = ?, sub_label = ?, duration = ?,
		    cover_url = ?, links = ?, updated_at = ?
		WHERE id = ?`,
		string(entry.Module), string(entry.Operation), meta.Title, meta.Category, meta.SubLabel, meta.Duration,
		entry.Payload.Resources.CoverURL, string(links), formatTime(entry.UpdatedAt), entry.ID())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Get fetches by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (inventory.Entry, bool, error) {
	row := r.db.QueryRowContext(ctx, sqliteSelect+` WHERE id = ?`, id)
	entry, err := scanSQLiteEntry(row)
	if err == sql.ErrNoRows {
		return inventory.Entry{}, false, nil
	}
	if err != nil {
		return inventory.Entry{}, false, err
	}
	return entry, true, nil
}

// Delete removes the row.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// List returns matching rows in insertion order.
func (r *SQLiteRepository) List(ctx context.Context, filter inventory.Filter) ([]inventory.Entry, error) {
	module := string(filter.Module)
	rows, err := r.db.QueryContext(ctx, sqliteSelect+`
		WHERE (? = '' OR module = ?) AND (? = '' OR category = ?)
		ORDER BY seq`, module, module, filter.Category, filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []inventory.Entry
	for rows.Next() {
		entry, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

const sqliteSelect = `SELECT id, module, operation, title, category, sub_label, duration, cover_url, links, created_at, updated_at
	FROM inventory_entries`

func scanSQLiteEntry(row rowScanner) (inventory.Entry, error) {
	var (
		entry                    inventory.Entry
		module, op, links        string
		createdText, updatedText string
	)
	meta := &entry.Payload.Metadata
	if err := row.Scan(&entry.Payload.ID, &module, &op, &meta.Title, &meta.Category, &meta.SubLabel,
		&meta.Duration, &entry.Payload.Resources.CoverURL, &links, &createdText, &updatedText); err != nil {
		return inventory.Entry{}, err
	}
	if err := json.Unmarshal([]byte(links), &entry.Payload.Resources.Links); err != nil {
		return inventory.Entry{}, fmt.Errorf("decode links for %s: %w", entry.Payload.ID, err)
	}
	entry.Module = inventory.Module(module)
	entry.Operation = inventory.Operation(op)
	var err error
	if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdText); err != nil {
		return inventory.Entry{}, fmt.Errorf("decode created_at for %s: %w", entry.Payload.ID, err)
	}
	if entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedText); err != nil {
		return inventory.Entry{}, fmt.Errorf("decode updated_at for %s: %w", entry.Payload.ID, err)
	}
	return entry, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

var _ inventory.Repository = (*SQLiteRepository)(nil)
