package repository

import (
	"context"

	"boxoffice/internal/domain"
)

// ReservationStore is the persistence boundary for reservations. LoadAll never
// fails the caller: backends degrade read problems to "no prior reservations".
// SaveAll replaces the persisted set wholesale and is best-effort; a write
// failure is reported, not retried.
type ReservationStore interface {
	LoadAll(ctx context.Context) ([]domain.Reservation, error)
	SaveAll(ctx context.Context, reservations []domain.Reservation) error
}

// UserStore is the credential boundary's storage side. Create returns
// ErrConflict for a duplicate username; Lookup returns ErrNotFound when the
// user is unknown.
type UserStore interface {
	Lookup(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, user domain.User) error
}
