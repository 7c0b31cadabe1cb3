package service

import (
	"log/slog"

	"boxoffice/internal/auth"
	"boxoffice/internal/ledger"
	"boxoffice/internal/pricing"
	redisx "boxoffice/internal/redis"
	"boxoffice/internal/repository"
	redisrepo "boxoffice/internal/repository/redis"
	"boxoffice/internal/schedule"
	"boxoffice/internal/service/account"
	"boxoffice/internal/service/booking"
)

type Services struct {
	Booking *booking.Service
	Account *account.Service
}

type Config struct {
	Booking booking.Config
	Account account.Config
}

func NewServices(
	ldg *ledger.Ledger,
	catalog *schedule.Catalog,
	calc *pricing.Calculator,
	reservations repository.ReservationStore,
	users repository.UserStore,
	tokens *auth.TokenManager,
	cache *redisrepo.Cache,
	pubsub *redisx.ShowsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Booking: booking.New(ldg, catalog, calc, reservations, cache, pubsub, limiter, logger, cfg.Booking),
		Account: account.New(users, tokens, cfg.Account),
	}
}
