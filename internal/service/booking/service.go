package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/domain"
	"boxoffice/internal/ledger"
	"boxoffice/internal/pricing"
	redisx "boxoffice/internal/redis"
	"boxoffice/internal/repository"
	redisrepo "boxoffice/internal/repository/redis"
	"boxoffice/internal/schedule"
)

type Config struct {
	AvailabilityTTL time.Duration
}

// Service orchestrates one venue's booking flow: show listing and
// availability, draft reservations, seat claims and releases, cancellation,
// and checkout with receipts. Cache, pubsub, and limiter are optional; a nil
// value simply disables the concern.
type Service struct {
	ledger  *ledger.Ledger
	catalog *schedule.Catalog
	calc    *pricing.Calculator
	store   repository.ReservationStore
	cache   *redisrepo.Cache
	pubsub  *redisx.ShowsPubSub
	limiter *redisrepo.SlidingWindowLimiter
	logger  *slog.Logger
	cfg     Config
}

func New(
	ldg *ledger.Ledger,
	catalog *schedule.Catalog,
	calc *pricing.Calculator,
	store repository.ReservationStore,
	cache *redisrepo.Cache,
	pubsub *redisx.ShowsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}
	return &Service{
		ledger:  ldg,
		catalog: catalog,
		calc:    calc,
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		logger:  logger,
		cfg:     cfg,
	}
}

// Bootstrap loads the persisted reservations and replays their seats into the
// catalog. A failing store degrades to an empty history, per the persistence
// contract.
func (s *Service) Bootstrap(ctx context.Context) {
	loaded, err := s.store.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("loading reservations failed, starting empty", "error", err)
		loaded = nil
	}
	s.ledger.Replay(loaded)
	s.logger.Info("reservations replayed", "count", len(loaded))
}

type ShowSlot struct {
	Index    int    `json:"index"`
	Showtime string `json:"showtime"`
}

// Shows lists the season's show times with their 1-based selection index.
func (s *Service) Shows(_ context.Context) []ShowSlot {
	slots := s.catalog.Slots()
	out := make([]ShowSlot, len(slots))
	for i, slot := range slots {
		out[i] = ShowSlot{Index: i + 1, Showtime: slot.Format(domain.TimeSlotLayout)}
	}
	return out
}

// Availability lists the free seats of the show at the given 1-based index,
// read through the cache when one is wired.
func (s *Service) Availability(ctx context.Context, index int) ([]domain.SectionAvailability, error) {
	const op = "service.booking.Availability"

	showtime, err := s.catalog.ResolveIndex(index)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if s.cache == nil {
		return s.catalog.Availability(showtime)
	}

	slot := showtime.Format(domain.TimeSlotLayout)
	return redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyShowAvailability(slot),
		s.cfg.AvailabilityTTL,
		func(context.Context) ([]domain.SectionAvailability, error) {
			return s.catalog.Availability(showtime)
		},
	)
}

type BookingRef struct {
	ID       string `json:"booking_id"`
	Showtime string `json:"showtime"`
}

// OpenBooking starts a draft reservation for the show at the given index.
func (s *Service) OpenBooking(_ context.Context, username string, index int) (BookingRef, error) {
	const op = "service.booking.OpenBooking"

	showtime, err := s.catalog.ResolveIndex(index)
	if err != nil {
		return BookingRef{}, fmt.Errorf("%s:%w", op, err)
	}

	handle := s.ledger.OpenDraft(username, showtime)
	return BookingRef{
		ID:       handle.String(),
		Showtime: showtime.Format(domain.TimeSlotLayout),
	}, nil
}

// ClaimSeats reserves a seat batch against the holder's draft. Seats applied
// before the first failure stay claimed; the cache is invalidated either way.
func (s *Service) ClaimSeats(ctx context.Context, username string, handle uuid.UUID, seats, rlKey string) error {
	const op = "service.booking.ClaimSeats"

	if seats == "" {
		return fmt.Errorf("%s:%w", op, ErrEmptyBatch)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s:%w (retry in %s)", op, ErrRateLimited, retry)
		}
	}

	showtime, err := s.ledger.ClaimSeats(handle, username, seats)
	if !showtime.IsZero() {
		s.invalidate(ctx, showtime)
	}
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

// ReleaseSeats frees seats of the holder's draft. Codes not on the draft are
// ignored.
func (s *Service) ReleaseSeats(ctx context.Context, username string, handle uuid.UUID, seats string) error {
	const op = "service.booking.ReleaseSeats"

	if seats == "" {
		return fmt.Errorf("%s:%w", op, ErrEmptyBatch)
	}

	showtime, err := s.ledger.ReleaseSeats(handle, username, seats)
	if !showtime.IsZero() {
		s.invalidate(ctx, showtime)
	}
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

type ReservationView struct {
	Index        int      `json:"index"`
	Confirmation string   `json:"confirmation,omitempty"`
	Showtime     string   `json:"showtime"`
	Seats        []string `json:"seats"`
	SeatCount    int      `json:"seat_count"`
}

// Reservations returns the holder's merged confirmed and in-session
// reservations in display order, 1-based indexed for cancellation.
func (s *Service) Reservations(_ context.Context, username string) []ReservationView {
	view := s.ledger.View(username)
	out := make([]ReservationView, len(view))
	for i, res := range view {
		out[i] = ReservationView{
			Index:        i + 1,
			Confirmation: res.Confirmation,
			Showtime:     res.Showtime.Format(domain.TimeSlotLayout),
			Seats:        res.Seats,
			SeatCount:    res.SeatCount,
		}
	}
	return out
}

// CancelSeats releases a seat batch from the holder's reservation at the
// given view index, relocating a previously-confirmed reservation into the
// working set.
func (s *Service) CancelSeats(ctx context.Context, username string, index int, seats string) error {
	const op = "service.booking.CancelSeats"

	if seats == "" {
		return fmt.Errorf("%s:%w", op, ErrEmptyBatch)
	}

	showtime, err := s.ledger.CancelSeats(username, index, seats)
	if !showtime.IsZero() {
		s.invalidate(ctx, showtime)
	}
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

type Receipt struct {
	Confirmation string                `json:"confirmation"`
	Username     string                `json:"username"`
	Showtime     string                `json:"showtime"`
	Seats        []string              `json:"seats"`
	SeatCount    int                   `json:"seat_count"`
	Breakdown    domain.PriceBreakdown `json:"breakdown"`
	Text         string                `json:"text"`
}

// Checkout ends the holder's session: empty drafts are discarded, the rest
// are confirmed, and a receipt with the price breakdown is produced for every
// reservation touched this session. The full reservation set is persisted
// best-effort afterwards.
func (s *Service) Checkout(ctx context.Context, username string) []Receipt {
	finalized := s.ledger.Checkout(username)

	receipts := make([]Receipt, 0, len(finalized))
	for i := range finalized {
		res := finalized[i]
		breakdown := s.calc.Breakdown(&res)
		receipts = append(receipts, Receipt{
			Confirmation: res.Confirmation,
			Username:     res.Username,
			Showtime:     res.Showtime.Format(domain.TimeSlotLayout),
			Seats:        res.Seats,
			SeatCount:    res.SeatCount,
			Breakdown:    breakdown,
			Text:         renderReceipt(&res, breakdown),
		})
	}

	if err := s.Persist(ctx); err != nil {
		s.logger.Error("saving reservations failed", "error", err)
	}
	return receipts
}

// Persist writes the current reservation set to the store.
func (s *Service) Persist(ctx context.Context) error {
	return s.store.SaveAll(ctx, s.ledger.CompileAll())
}

func (s *Service) invalidate(ctx context.Context, showtime time.Time) {
	slot := showtime.Format(domain.TimeSlotLayout)
	if s.cache != nil {
		_ = s.cache.InvalidateShow(ctx, slot)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishShowChanged(ctx, slot)
	}
}
