package booking

import (
	"strings"
	"testing"
	"time"

	"boxoffice/internal/domain"
	"boxoffice/internal/pricing"
)

func TestRenderReceipt(t *testing.T) {
	res := domain.NewReservation("alice", time.Date(2020, 12, 23, 18, 30, 0, 0, time.UTC))
	res.AddSeat("m1")
	res.AddSeat("m2")
	res.AddSeat("sb26")
	res.Confirmation = "alice-1"

	calc := pricing.New(pricing.Config{})
	text := renderReceipt(res, calc.Breakdown(res))

	for _, want := range []string{
		"Receipt for Reservation:",
		"alice-1",
		"12-23-2020 18:30",
		"Number of seats reserved:",
		"m1, m2, sb26",
		"Cost of Reservation:",
		"Main Floor Left : 2 x $35 = $70",
		"South Balcony Lower : 1 x $55 = $55",
		"Grand Total: $125",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("receipt missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Discount applied") {
		t.Fatalf("no discount expected:\n%s", text)
	}
	if strings.Contains(text, "West Balcony") {
		t.Fatalf("empty sections must not be listed:\n%s", text)
	}
}

func TestRenderReceiptNightPromotion(t *testing.T) {
	res := domain.NewReservation("bob", time.Date(2020, 12, 26, 20, 30, 0, 0, time.UTC))
	res.AddSeat("eb1")
	res.Confirmation = "bob-1"

	calc := pricing.New(pricing.Config{})
	text := renderReceipt(res, calc.Breakdown(res))

	if !strings.Contains(text, "Discount applied: Discount Night Promotion") {
		t.Fatalf("night promotion line missing:\n%s", text)
	}
	if !strings.Contains(text, "East Balcony : 1 x $20 = $20") {
		t.Fatalf("flat night price not applied:\n%s", text)
	}
}

func TestRenderReceiptGroupDiscount(t *testing.T) {
	res := domain.NewReservation("carol", time.Date(2020, 12, 23, 20, 30, 0, 0, time.UTC))
	for _, seat := range []string{"wb1", "wb2", "wb3", "wb4", "wb5"} {
		res.AddSeat(seat)
	}
	res.Confirmation = "carol-1"

	calc := pricing.New(pricing.Config{})
	text := renderReceipt(res, calc.Breakdown(res))

	if !strings.Contains(text, "Discount applied: Group Discount") {
		t.Fatalf("group discount line missing:\n%s", text)
	}
	if !strings.Contains(text, "Grand Total: $190") {
		t.Fatalf("grand total wrong:\n%s", text)
	}
}
