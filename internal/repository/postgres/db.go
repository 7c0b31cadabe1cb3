package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the Postgres-backed repositories over one pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Reservations() *ReservationStore { return &ReservationStore{store: s} }
func (s *Store) Users() *UserStore               { return &UserStore{pool: s.pool} }

// Migrate creates the two tables this service needs. Safe to run on every
// startup.
func (s *Store) Migrate(ctx context.Context) error {
	const op = "postgres.Store.Migrate"

	const ddl = `
CREATE TABLE IF NOT EXISTS reservations (
    id           BIGSERIAL PRIMARY KEY,
    confirmation TEXT NOT NULL,
    username     TEXT NOT NULL,
    showtime     TIMESTAMPTZ NOT NULL,
    seats        TEXT NOT NULL,
    seat_count   INT NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL
);`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

func (s *Store) runTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
