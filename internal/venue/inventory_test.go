package venue

import (
	"errors"
	"testing"
	"time"

	"boxoffice/internal/domain"
)

func newRes() *domain.Reservation {
	return domain.NewReservation("alice", time.Date(2020, 12, 23, 18, 30, 0, 0, time.UTC))
}

func TestReserveAndDoubleClaim(t *testing.T) {
	inv := NewInventory()
	first := newRes()

	if err := inv.Apply("m1", Reserve, first); err != nil {
		t.Fatalf("reserve m1: %v", err)
	}
	if !first.HasSeat("m1") || first.SeatCount != 1 {
		t.Fatalf("reservation not updated: seats=%v count=%d", first.Seats, first.SeatCount)
	}

	second := newRes()
	err := inv.Apply("m1", Reserve, second)
	if !errors.Is(err, ErrSeatOverbooked) {
		t.Fatalf("double claim: got %v, want ErrSeatOverbooked", err)
	}
	if second.SeatCount != 0 {
		t.Fatalf("failed claim must not touch the reservation, got %v", second.Seats)
	}
}

func TestReserveCancelRoundTrip(t *testing.T) {
	inv := NewInventory()
	res := newRes()

	if err := inv.Apply("sb7", Reserve, res); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := inv.Apply("sb7", Cancel, res); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.SeatCount != 0 || res.HasSeat("sb7") {
		t.Fatalf("seat not removed from reservation: %v", res.Seats)
	}

	if err := inv.Apply("sb7", Reserve, newRes()); err != nil {
		t.Fatalf("reserve after cancel: %v", err)
	}
}

func TestBatchStopsAtFirstFailure(t *testing.T) {
	inv := NewInventory()
	res := newRes()

	err := inv.Apply("m1, m151, m2", Reserve, res)
	if !errors.Is(err, ErrSeatDoesNotExist) {
		t.Fatalf("got %v, want ErrSeatDoesNotExist", err)
	}
	if !res.HasSeat("m1") {
		t.Fatalf("seat before the failure must stay claimed, got %v", res.Seats)
	}
	if res.HasSeat("m2") {
		t.Fatalf("seat after the failure must not be claimed, got %v", res.Seats)
	}

	// m2 stayed free, a later batch can take it
	if err := inv.Apply("m2", Reserve, newRes()); err != nil {
		t.Fatalf("reserve m2 after aborted batch: %v", err)
	}
}

func TestLoadDoesNotTouchReservation(t *testing.T) {
	inv := NewInventory()
	res := newRes()
	res.AddSeat("wb10")

	if err := inv.Apply("wb10", Load, res); err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.SeatCount != 1 {
		t.Fatalf("load must not grow the reservation, count=%d", res.SeatCount)
	}

	if err := inv.Apply("wb10", Reserve, newRes()); !errors.Is(err, ErrSeatOverbooked) {
		t.Fatalf("loaded seat must be occupied, got %v", err)
	}
}

func TestAvailability(t *testing.T) {
	inv := NewInventory()
	if err := inv.Apply("m51, eb1", Reserve, newRes()); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	byName := make(map[string]domain.SectionAvailability)
	for _, sa := range inv.Availability() {
		byName[sa.Section] = sa
	}

	right := byName["Main Floor Right"]
	if len(right.Seats) != 49 {
		t.Fatalf("Main Floor Right free = %d, want 49", len(right.Seats))
	}
	for _, n := range right.Seats {
		if n == 51 {
			t.Fatalf("seat 51 still listed as free")
		}
		if n < 51 || n > 100 {
			t.Fatalf("Main Floor Right numbering out of range: %d", n)
		}
	}

	east := byName["East Balcony"]
	if len(east.Seats) != 99 || east.Seats[0] != 2 {
		t.Fatalf("East Balcony free = %v...", east.Seats[:3])
	}
	if east.Prefix != "eb" {
		t.Fatalf("East Balcony prefix = %q", east.Prefix)
	}
}
