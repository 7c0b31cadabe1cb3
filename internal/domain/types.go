package domain

import (
	"strings"
	"time"
)

// TimeSlotLayout is the textual form of a show time everywhere it crosses a
// boundary: the reservation file, the REST API, and receipts (MM-DD-YYYY HH:mm).
const TimeSlotLayout = "01-02-2006 15:04"

type Section int

const (
	MainFloorLeft Section = iota
	MainFloorRight
	MainFloorCenter
	SouthBalconyUpper
	SouthBalconyLower
	WestBalcony
	EastBalcony
)

// Sections lists all seven sections in display order.
var Sections = []Section{
	MainFloorLeft,
	MainFloorRight,
	MainFloorCenter,
	SouthBalconyUpper,
	SouthBalconyLower,
	WestBalcony,
	EastBalcony,
}

func (s Section) String() string {
	switch s {
	case MainFloorLeft:
		return "Main Floor Left"
	case MainFloorRight:
		return "Main Floor Right"
	case MainFloorCenter:
		return "Main Floor Center"
	case SouthBalconyUpper:
		return "South Balcony Upper"
	case SouthBalconyLower:
		return "South Balcony Lower"
	case WestBalcony:
		return "West Balcony"
	case EastBalcony:
		return "East Balcony"
	default:
		return "Unknown"
	}
}

// Reservation is one holder's booking for one show time. A reservation with an
// empty Confirmation is still a draft; the confirmation number is assigned
// exactly once when the holder checks out with at least one seat held.
type Reservation struct {
	Confirmation string    `json:"confirmation,omitempty"`
	Username     string    `json:"username"`
	Showtime     time.Time `json:"showtime"`
	Seats        []string  `json:"seats"`
	SeatCount    int       `json:"seat_count"`

	// TieBreak orders two unconfirmed reservations sharing a show time within
	// a single view. It is regenerated per view and never persisted.
	TieBreak string `json:"-"`
}

func NewReservation(username string, showtime time.Time) *Reservation {
	return &Reservation{
		Username: username,
		Showtime: showtime,
		Seats:    []string{},
	}
}

func (r *Reservation) Confirmed() bool { return r.Confirmation != "" }

func (r *Reservation) AddSeat(code string) {
	r.Seats = append(r.Seats, code)
	r.SeatCount++
}

func (r *Reservation) RemoveSeat(code string) {
	for i, s := range r.Seats {
		if s == code {
			r.Seats = append(r.Seats[:i], r.Seats[i+1:]...)
			r.SeatCount--
			return
		}
	}
}

func (r *Reservation) HasSeat(code string) bool {
	for _, s := range r.Seats {
		if s == code {
			return true
		}
	}
	return false
}

// SeatList renders the seat codes the way they travel on the wire and in the
// reservation file: comma+space joined, insertion order.
func (r *Reservation) SeatList() string { return strings.Join(r.Seats, ", ") }

type DiscountKind string

const (
	DiscountNone  DiscountKind = "none"
	DiscountNight DiscountKind = "night"
	DiscountGroup DiscountKind = "group"
)

// TicketItem is one per-section row of a price breakdown.
type TicketItem struct {
	Section   string  `json:"section"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// PriceBreakdown is the receipt-time cost view of a reservation. It is
// computed fresh per reservation and never fed back into the ledger.
type PriceBreakdown struct {
	Discount   DiscountKind `json:"discount"`
	Items      []TicketItem `json:"items"`
	GrandTotal float64      `json:"grand_total"`
}

// SectionAvailability lists the free seats of one section under its seat-code
// prefix, global numbering. Descriptive only; not a domain object.
type SectionAvailability struct {
	Section string `json:"section"`
	Prefix  string `json:"prefix"`
	Seats   []int  `json:"seats"`
}

// User carries the credentials for one holder. The password is stored only as
// a bcrypt hash; the core never sees it.
type User struct {
	Username     string
	PasswordHash string
}
