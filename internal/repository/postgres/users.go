package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"boxoffice/internal/domain"
	"boxoffice/internal/repository"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func (u *UserStore) Lookup(ctx context.Context, username string) (domain.User, error) {
	const op = "postgres.UserStore.Lookup"

	var user domain.User
	err := u.pool.QueryRow(ctx, `
SELECT username, password_hash FROM users WHERE username = $1`, username).
		Scan(&user.Username, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%s:%w", op, err)
	}
	return user, nil
}

func (u *UserStore) Create(ctx context.Context, user domain.User) error {
	const op = "postgres.UserStore.Create"

	_, err := u.pool.Exec(ctx, `
INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		user.Username, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}
