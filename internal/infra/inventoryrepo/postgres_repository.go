package inventoryrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edudigital/portal/internal/domain/inventory"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS inventory_entries (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	module      TEXT NOT NULL,
	operation   TEXT NOT NULL,
	title       TEXT NOT NULL,
	category    TEXT NOT NULL,
	sub_label   TEXT NOT NULL,
	duration    TEXT NOT NULL,
	cover_url   TEXT NOT NULL,
	links       TEXT[] NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS inventory_entries_module_idx ON inventory_entries (module, category)`

// PostgresRepository persists entries in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository ensures the schema exists and returns the repository.
func NewPostgresRepository(ctx context.Context, pool *pgxpool.Pool) (*PostgresRepository, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool}, nil
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, entry inventory.Entry) error {
	meta, res := entry.Payload.Metadata, entry.Payload.Resources
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory_entries
			(id, module, operation, title, category, sub_label, duration, cover_url, links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, entry.ID(), string(entry.Module), string(entry.Operation), meta.Title, meta.Category, meta.SubLabel,
		meta.Duration, res.CoverURL, res.Links, entry.CreatedAt, entry.UpdatedAt)
	return err
}

// Update rewrites an existing row.
func (r *PostgresRepository) Update(ctx context.Context, entry inventory.Entry) error {
	meta, res := entry.Payload.Metadata, entry.Payload.Resources
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_entries
		SET module = $2, operation = $3, title = $4, category = $5, sub_label = $6,
		    duration = $7, cover_url = $8, links = $9, updated_at = $10
		WHERE id = $1
	`, entry.ID(), string(entry.Module), string(entry.Operation), meta.Title, meta.Category, meta.SubLabel,
		meta.Duration, res.CoverURL, res.Links, entry.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// Get fetches by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (inventory.Entry, bool, error) {
	rows, err := r.pool.Query(ctx, selectColumns+` WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return inventory.Entry{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return inventory.Entry{}, false, rows.Err()
	}
	entry, err := scanPostgresEntry(rows)
	if err != nil {
		return inventory.Entry{}, false, err
	}
	return entry, true, rows.Err()
}

// Delete removes the row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// List returns matching rows in insertion order.
func (r *PostgresRepository) List(ctx context.Context, filter inventory.Filter) ([]inventory.Entry, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE ($1 = '' OR module = $1) AND ($2 = '' OR category = $2)
		ORDER BY seq
	`, string(filter.Module), filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []inventory.Entry
	for rows.Next() {
		entry, err := scanPostgresEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

const selectColumns = `
	SELECT id, module, operation, title, category, sub_label, duration, cover_url, links, created_at, updated_at
	FROM inventory_entries`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgresEntry(row rowScanner) (inventory.Entry, error) {
	var (
		entry            inventory.Entry
		module, op       string
		created, updated time.Time
	)
	meta := &entry.Payload.Metadata
	res := &entry.Payload.Resources
	if err := row.Scan(&entry.Payload.ID, &module, &op, &meta.Title, &meta.Category, &meta.SubLabel,
		&meta.Duration, &res.CoverURL, &res.Links, &created, &updated); err != nil {
		return inventory.Entry{}, err
	}
	entry.Module = inventory.Module(module)
	entry.Operation = inventory.Operation(op)
	entry.CreatedAt = created.UTC()
	entry.UpdatedAt = updated.UTC()
	return entry, nil
}

var _ inventory.Repository = (*PostgresRepository)(nil)
