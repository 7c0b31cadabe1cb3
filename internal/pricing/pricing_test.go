package pricing

import (
	"testing"
	"time"

	"boxoffice/internal/domain"
)

var regularNight = time.Date(2020, 12, 23, 18, 30, 0, 0, time.UTC)
var promoNight = time.Date(2020, 12, 26, 18, 30, 0, 0, time.UTC)

func reservation(showtime time.Time, seats ...string) *domain.Reservation {
	res := domain.NewReservation("alice", showtime)
	for _, s := range seats {
		res.AddSeat(s)
	}
	return res
}

func TestZeroSeatsHasNoDiscount(t *testing.T) {
	calc := New(Config{})
	// even on a promo night an empty reservation costs nothing and earns nothing
	out := calc.Breakdown(reservation(promoNight))
	if out.Discount != domain.DiscountNone {
		t.Fatalf("discount = %v, want none", out.Discount)
	}
	if out.GrandTotal != 0 {
		t.Fatalf("grand total = %v, want 0", out.GrandTotal)
	}
}

func TestSectionTierPrices(t *testing.T) {
	calc := New(Config{})
	tests := []struct {
		seat string
		want float64
	}{
		{"m1", 35},
		{"m51", 35},
		{"m101", 45},
		{"sb1", 50},
		{"sb26", 55},
		{"wb1", 40},
		{"eb1", 40},
	}
	for _, tt := range tests {
		out := calc.Breakdown(reservation(regularNight, tt.seat))
		if out.GrandTotal != tt.want {
			t.Fatalf("seat %s: grand total = %v, want %v", tt.seat, out.GrandTotal, tt.want)
		}
	}
}

func TestNightPriceReplacesUnitPrice(t *testing.T) {
	calc := New(Config{})
	out := calc.Breakdown(reservation(promoNight, "sb26", "m101"))
	if out.Discount != domain.DiscountNight {
		t.Fatalf("discount = %v, want night", out.Discount)
	}
	if out.GrandTotal != 40 {
		t.Fatalf("grand total = %v, want 40 (2 x flat 20)", out.GrandTotal)
	}
}

func TestGroupDiscountThresholds(t *testing.T) {
	calc := New(Config{})

	// 4 seats on the west balcony: below every threshold
	out := calc.Breakdown(reservation(regularNight, "wb1", "wb2", "wb3", "wb4"))
	if out.Discount != domain.DiscountNone || out.GrandTotal != 160 {
		t.Fatalf("4 seats: discount=%v total=%v, want none/160", out.Discount, out.GrandTotal)
	}

	// 5 seats: 2 off per unit
	out = calc.Breakdown(reservation(regularNight, "wb1", "wb2", "wb3", "wb4", "wb5"))
	if out.Discount != domain.DiscountGroup || out.GrandTotal != 190 {
		t.Fatalf("5 seats: discount=%v total=%v, want group/190", out.Discount, out.GrandTotal)
	}

	// 11 seats: 5 off per unit
	codes := []string{"wb1", "wb2", "wb3", "wb4", "wb5", "wb6", "wb7", "wb8", "wb9", "wb10", "wb11"}
	out = calc.Breakdown(reservation(regularNight, codes...))
	if out.Discount != domain.DiscountGroup || out.GrandTotal != 385 {
		t.Fatalf("11 seats: discount=%v total=%v, want group/385", out.Discount, out.GrandTotal)
	}
}

func TestNightBeatsGroup(t *testing.T) {
	calc := New(Config{})
	codes := []string{"m1", "m2", "m3", "m4", "m5", "m6"}
	out := calc.Breakdown(reservation(promoNight, codes...))
	if out.Discount != domain.DiscountNight {
		t.Fatalf("discount = %v, want night over group", out.Discount)
	}
	if out.GrandTotal != 120 {
		t.Fatalf("grand total = %v, want 120 (6 x flat 20)", out.GrandTotal)
	}
}

func TestBreakdownRowsPerSection(t *testing.T) {
	calc := New(Config{})
	out := calc.Breakdown(reservation(regularNight, "m1", "m2", "eb1"))

	if len(out.Items) != 7 {
		t.Fatalf("items = %d, want one row per section", len(out.Items))
	}
	byName := make(map[string]domain.TicketItem)
	for _, item := range out.Items {
		byName[item.Section] = item
	}
	if got := byName["Main Floor Left"]; got.Quantity != 2 || got.Subtotal != 70 {
		t.Fatalf("Main Floor Left row = %+v", got)
	}
	if got := byName["East Balcony"]; got.Quantity != 1 || got.Subtotal != 40 {
		t.Fatalf("East Balcony row = %+v", got)
	}
	if got := byName["West Balcony"]; got.Quantity != 0 || got.Subtotal != 0 {
		t.Fatalf("West Balcony row = %+v", got)
	}
}
