package adminrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edudigital/portal/internal/domain/auth"
)

const schema = `
CREATE TABLE IF NOT EXISTS admins (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	display_name  TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresRepository persists admin accounts in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the table if needed and returns the repository.
func NewPostgresRepository(ctx context.Context, pool *pgxpool.Pool) (*PostgresRepository, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool}, nil
}

// Upsert inserts the admin or refreshes its display name and hash.
func (r *PostgresRepository) Upsert(ctx context.Context, username, displayName, passwordHash string) (auth.Admin, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (username, display_name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET display_name = EXCLUDED.display_name, password_hash = EXCLUDED.password_hash
		RETURNING id, username, display_name, password_hash, created_at
	`, username, displayName, passwordHash)
	return scanAdmin(row)
}

// GetByUsername fetches an admin by login name.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (auth.Admin, bool, error) {
	return r.getOne(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM admins
		WHERE username = $1
		LIMIT 1
	`, username)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.Admin, bool, error) {
	return r.getOne(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM admins
		WHERE id = $1
		LIMIT 1
	`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (auth.Admin, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return auth.Admin{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.Admin{}, false, rows.Err()
	}
	admin, err := scanAdmin(rows)
	if err != nil {
		return auth.Admin{}, false, err
	}
	return admin, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (auth.Admin, error) {
	var admin auth.Admin
	var created time.Time
	if err := row.Scan(&admin.ID, &admin.Username, &admin.DisplayName, &admin.PasswordHash, &created); err != nil {
		return auth.Admin{}, err
	}
	admin.CreatedAt = created.UTC()
	return admin, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
