package venue

import (
	"fmt"
	"strings"
	"sync"

	"boxoffice/internal/domain"
)

// Mode selects how a seat operation treats occupancy and the reservation.
type Mode int

const (
	// Reserve claims a free seat and records it on the reservation.
	Reserve Mode = iota
	// Cancel frees a seat and removes it from the reservation. Ownership is
	// enforced one layer up, by checking the seat is on the reservation before
	// the release is requested.
	Cancel
	// Load marks a seat occupied while replaying persisted reservations. The
	// reservation already carries the seat, so it is not touched.
	Load
)

// block is the occupancy array of one section: index 0 is the section's first
// seat, and an entry only ever becomes true through a successful claim.
type block struct {
	occupied []bool
}

// Inventory owns the seven seat blocks of a single show time. It is the only
// authority on occupancy for that show time; one lock per show time is enough
// since a batch always stays within one inventory.
type Inventory struct {
	mu     sync.Mutex
	blocks map[domain.Section]*block
}

func NewInventory() *Inventory {
	blocks := make(map[domain.Section]*block, len(layouts))
	for _, l := range layouts {
		blocks[l.section] = &block{occupied: make([]bool, l.capacity)}
	}
	return &Inventory{blocks: blocks}
}

// apply flips one seat. Callers hold i.mu.
func (i *Inventory) apply(section domain.Section, offset int, mode Mode) error {
	b := i.blocks[section]
	if mode == Cancel {
		b.occupied[offset] = false
		return nil
	}
	if b.occupied[offset] {
		return ErrSeatOverbooked
	}
	b.occupied[offset] = true
	return nil
}

// Apply runs one batch of seat codes (comma+space delimited) against this
// inventory. Codes are applied in order and the batch stops at the first
// failure; seats applied earlier in the same batch stay applied. In Reserve
// and Cancel mode the per-seat side effect on the reservation happens only for
// codes that succeed.
func (i *Inventory) Apply(batch string, mode Mode, res *domain.Reservation) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, code := range strings.Split(batch, ", ") {
		section, offset, err := ResolveSeat(code)
		if err != nil {
			return err
		}
		if err := i.apply(section, offset, mode); err != nil {
			return fmt.Errorf("seat %s: %w", code, err)
		}
		switch mode {
		case Reserve:
			res.AddSeat(code)
		case Cancel:
			res.RemoveSeat(code)
		}
	}
	return nil
}

// Availability lists, per section, the ascending free seat numbers in the
// section's global numbering.
func (i *Inventory) Availability() []domain.SectionAvailability {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]domain.SectionAvailability, 0, len(layouts))
	for _, l := range layouts {
		b := i.blocks[l.section]
		free := make([]int, 0, l.capacity)
		for idx, taken := range b.occupied {
			if !taken {
				free = append(free, l.base+idx+1)
			}
		}
		out = append(out, domain.SectionAvailability{
			Section: l.section.String(),
			Prefix:  l.prefix,
			Seats:   free,
		})
	}
	return out
}
