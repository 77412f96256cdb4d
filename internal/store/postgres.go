package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmedina/shortlink/internal/shortlink"
)

// PostgresStore is a PostgreSQL implementation of shortlink.Store.
//
// Expected schema:
//
//	CREATE TABLE short_links (
//	    id       TEXT PRIMARY KEY,
//	    long_url TEXT NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Get(ctx context.Context, id shortlink.ID) (string, error) {
	var longURL string

	err := p.pool.QueryRow(ctx,
		`SELECT long_url FROM short_links WHERE id = $1`,
		string(id),
	).Scan(&longURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shortlink.ErrNotFound
		}

		return "", err
	}

	return longURL, nil
}

func (p *PostgresStore) Put(ctx context.Context, id shortlink.ID, longURL string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO short_links (id, long_url)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET long_url = EXCLUDED.long_url
	`, string(id), longURL)

	return err
}

func (p *PostgresStore) PutIfAbsent(ctx context.Context, id shortlink.ID, longURL string) (bool, error) {
	ct, err := p.pool.Exec(ctx, `
		INSERT INTO short_links (id, long_url)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, string(id), longURL)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() > 0, nil
}

func (p *PostgresStore) Exists(ctx context.Context, id shortlink.ID) (bool, error) {
	var exists bool

	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM short_links WHERE id = $1)`,
		string(id),
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Compile-time check.
var _ shortlink.Store = (*PostgresStore)(nil)
