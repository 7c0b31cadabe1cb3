package schedule

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"boxoffice/internal/domain"
	"boxoffice/internal/venue"
)

// Showtime is one clock time shows run at every day of the season.
type Showtime struct {
	Hour   int
	Minute int
}

// Config carries the startup parameters of the season: an inclusive calendar
// date range and the clock times of the daily shows. These are configuration,
// not business rules.
type Config struct {
	SeasonStart time.Time
	SeasonEnd   time.Time
	Showtimes   []Showtime
}

// Catalog owns every show time of the season and the seat inventory of each.
// It is populated once at startup and never resized; all occupancy mutations
// go through Claim, Release, or Replay.
type Catalog struct {
	slots       []time.Time
	inventories map[time.Time]*venue.Inventory
}

func New(cfg Config) *Catalog {
	if cfg.SeasonStart.IsZero() {
		cfg.SeasonStart = time.Date(2020, time.December, 23, 0, 0, 0, 0, time.UTC)
	}
	if cfg.SeasonEnd.IsZero() {
		cfg.SeasonEnd = time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC)
	}
	if len(cfg.Showtimes) == 0 {
		cfg.Showtimes = []Showtime{{18, 30}, {20, 30}}
	}

	c := &Catalog{inventories: make(map[time.Time]*venue.Inventory)}
	for day := cfg.SeasonStart; !day.After(cfg.SeasonEnd); day = day.AddDate(0, 0, 1) {
		for _, st := range cfg.Showtimes {
			slot := time.Date(day.Year(), day.Month(), day.Day(), st.Hour, st.Minute, 0, 0, time.UTC)
			c.slots = append(c.slots, slot)
			c.inventories[slot] = venue.NewInventory()
		}
	}
	sort.Slice(c.slots, func(i, j int) bool { return c.slots[i].Before(c.slots[j]) })
	return c
}

func (c *Catalog) Count() int { return len(c.slots) }

// Slots returns the show times in ascending order.
func (c *Catalog) Slots() []time.Time {
	out := make([]time.Time, len(c.slots))
	copy(out, c.slots)
	return out
}

// ResolveIndex maps a 1-based position in the ordered slot list to its show
// time.
func (c *Catalog) ResolveIndex(n int) (time.Time, error) {
	if n < 1 || n > len(c.slots) {
		return time.Time{}, fmt.Errorf("show %d: %w", n, ErrOutOfRange)
	}
	return c.slots[n-1], nil
}

func (c *Catalog) inventory(showtime time.Time) (*venue.Inventory, error) {
	inv, ok := c.inventories[showtime]
	if !ok {
		return nil, fmt.Errorf("show %s: %w", showtime.Format(domain.TimeSlotLayout), ErrUnknownShowtime)
	}
	return inv, nil
}

// Claim reserves a batch of seats for a show time and records them on the
// reservation.
func (c *Catalog) Claim(showtime time.Time, batch string, res *domain.Reservation) error {
	inv, err := c.inventory(showtime)
	if err != nil {
		return err
	}
	return inv.Apply(batch, venue.Reserve, res)
}

// Release frees a batch of seats for a show time and removes them from the
// reservation.
func (c *Catalog) Release(showtime time.Time, batch string, res *domain.Reservation) error {
	inv, err := c.inventory(showtime)
	if err != nil {
		return err
	}
	return inv.Apply(batch, venue.Cancel, res)
}

// Replay re-marks the seats of a persisted reservation as occupied. Failures
// (a conflicting duplicate, a retired show time, a bad seat code) are logged
// and skipped so one bad record never aborts startup.
func (c *Catalog) Replay(res *domain.Reservation, logger *slog.Logger) {
	if res.SeatCount == 0 {
		return
	}
	inv, err := c.inventory(res.Showtime)
	if err != nil {
		logger.Warn("replay skipped", "confirmation", res.Confirmation, "error", err)
		return
	}
	if err := inv.Apply(res.SeatList(), venue.Load, res); err != nil {
		logger.Warn("replay incomplete",
			"confirmation", res.Confirmation,
			"showtime", res.Showtime.Format(domain.TimeSlotLayout),
			"error", err,
		)
	}
}

// Availability lists the free seats of one show time per section.
func (c *Catalog) Availability(showtime time.Time) ([]domain.SectionAvailability, error) {
	inv, err := c.inventory(showtime)
	if err != nil {
		return nil, err
	}
	return inv.Availability(), nil
}
