package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"boxoffice/internal/domain"
)

// ReservationStore keeps the persisted reservation set in Postgres. The seat
// list is stored in the same comma+space form it travels in everywhere else,
// so the round-trip matches the file backend exactly.
type ReservationStore struct {
	store *Store
}

func (r *ReservationStore) LoadAll(ctx context.Context) ([]domain.Reservation, error) {
	const op = "postgres.ReservationStore.LoadAll"

	rows, err := r.store.pool.Query(ctx, `
SELECT confirmation, username, showtime, seats, seat_count
FROM reservations
ORDER BY showtime, confirmation, id`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var (
			res      domain.Reservation
			showtime time.Time
			seats    string
		)
		if err := rows.Scan(&res.Confirmation, &res.Username, &showtime, &seats, &res.SeatCount); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		res.Showtime = showtime.UTC()
		res.Seats = strings.Split(seats, ", ")
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	return out, nil
}

// SaveAll replaces the persisted set wholesale inside one transaction.
func (r *ReservationStore) SaveAll(ctx context.Context, reservations []domain.Reservation) error {
	const op = "postgres.ReservationStore.SaveAll"

	err := r.store.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE reservations`); err != nil {
			return err
		}

		b := &pgx.Batch{}
		for _, res := range reservations {
			b.Queue(`
INSERT INTO reservations (confirmation, username, showtime, seats, seat_count)
VALUES ($1, $2, $3, $4, $5)`,
				res.Confirmation, res.Username, res.Showtime.UTC(), res.SeatList(), res.SeatCount)
		}
		return tx.SendBatch(ctx, b).Close()
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}
