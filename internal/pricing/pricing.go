package pricing

import (
	"time"

	"boxoffice/internal/domain"
	"boxoffice/internal/venue"
)

// Config carries the pricing tiers and discount rules. Zero values fall back
// to the house defaults.
type Config struct {
	// Prices maps each section to its base unit price. Left/right main floor
	// share a tier, as do the east and west balconies.
	Prices map[domain.Section]float64

	// NightPrice replaces every unit price outright on promo nights.
	NightPrice float64
	// PromoNights is the fixed set of promotional show datetimes.
	PromoNights []time.Time

	// Group discount: at least LargeMin seats takes LargeOff per unit,
	// otherwise at least SmallMin seats takes SmallOff per unit.
	SmallMin int
	LargeMin int
	SmallOff float64
	LargeOff float64
}

func defaultPrices() map[domain.Section]float64 {
	return map[domain.Section]float64{
		domain.MainFloorLeft:     35,
		domain.MainFloorRight:    35,
		domain.MainFloorCenter:   45,
		domain.SouthBalconyUpper: 50,
		domain.SouthBalconyLower: 55,
		domain.WestBalcony:       40,
		domain.EastBalcony:       40,
	}
}

func defaultPromoNights() []time.Time {
	return []time.Time{
		time.Date(2020, time.December, 26, 18, 30, 0, 0, time.UTC),
		time.Date(2020, time.December, 26, 20, 30, 0, 0, time.UTC),
		time.Date(2020, time.December, 27, 18, 30, 0, 0, time.UTC),
		time.Date(2020, time.December, 27, 20, 30, 0, 0, time.UTC),
	}
}

// Calculator prices a reservation and selects its discount. It only reads the
// reservation and owns no durable state.
type Calculator struct {
	prices map[domain.Section]float64
	night  float64
	promo  map[time.Time]struct{}

	smallMin int
	largeMin int
	smallOff float64
	largeOff float64
}

func New(cfg Config) *Calculator {
	if cfg.Prices == nil {
		cfg.Prices = defaultPrices()
	}
	if cfg.NightPrice <= 0 {
		cfg.NightPrice = 20
	}
	if cfg.PromoNights == nil {
		cfg.PromoNights = defaultPromoNights()
	}
	if cfg.SmallMin <= 0 {
		cfg.SmallMin = 5
	}
	if cfg.LargeMin <= 0 {
		cfg.LargeMin = 11
	}
	if cfg.SmallOff <= 0 {
		cfg.SmallOff = 2
	}
	if cfg.LargeOff <= 0 {
		cfg.LargeOff = 5
	}

	promo := make(map[time.Time]struct{}, len(cfg.PromoNights))
	for _, t := range cfg.PromoNights {
		promo[t.UTC()] = struct{}{}
	}

	return &Calculator{
		prices:   cfg.Prices,
		night:    cfg.NightPrice,
		promo:    promo,
		smallMin: cfg.SmallMin,
		largeMin: cfg.LargeMin,
		smallOff: cfg.SmallOff,
		largeOff: cfg.LargeOff,
	}
}

// discount resolves the mutually exclusive discount for a reservation. The
// night discount takes precedence over the group discount even when the seat
// count would qualify for both.
func (c *Calculator) discount(showtime time.Time, seats int) (domain.DiscountKind, float64) {
	if seats == 0 {
		return domain.DiscountNone, 0
	}
	if _, ok := c.promo[showtime.UTC()]; ok {
		return domain.DiscountNight, c.night
	}
	if seats >= c.largeMin {
		return domain.DiscountGroup, c.largeOff
	}
	if seats >= c.smallMin {
		return domain.DiscountGroup, c.smallOff
	}
	return domain.DiscountNone, 0
}

// Breakdown produces the cost breakdown for a reservation: one row per
// section with the discount-adjusted unit price, plus the grand total. Seat
// codes that no longer resolve are skipped rather than failing the whole
// calculation.
func (c *Calculator) Breakdown(res *domain.Reservation) domain.PriceBreakdown {
	counts := make(map[domain.Section]int, len(domain.Sections))
	for _, code := range res.Seats {
		section, _, err := venue.ResolveSeat(code)
		if err != nil {
			continue
		}
		counts[section]++
	}

	kind, off := c.discount(res.Showtime, res.SeatCount)

	out := domain.PriceBreakdown{Discount: kind}
	for _, section := range domain.Sections {
		unit := c.prices[section]
		switch kind {
		case domain.DiscountNight:
			unit = c.night
		case domain.DiscountGroup:
			unit -= off
		}
		item := domain.TicketItem{
			Section:   section.String(),
			Quantity:  counts[section],
			UnitPrice: unit,
			Subtotal:  unit * float64(counts[section]),
		}
		out.Items = append(out.Items, item)
		out.GrandTotal += item.Subtotal
	}
	return out
}
