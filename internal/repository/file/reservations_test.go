package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boxoffice/internal/domain"
)

var showtime = time.Date(2020, 12, 26, 20, 30, 0, 0, time.UTC)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewReservationStore(t.TempDir())
	ctx := context.Background()

	in := []domain.Reservation{
		{
			Confirmation: "alice-1",
			Username:     "alice",
			Showtime:     showtime,
			Seats:        []string{"m1", "m2", "sb7"},
			SeatCount:    3,
		},
		{
			Confirmation: "bob-1",
			Username:     "bob",
			Showtime:     showtime.AddDate(0, 0, 1),
			Seats:        []string{"eb100"},
			SeatCount:    1,
		},
	}

	if err := store.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	out, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d reservations, want 2", len(out))
	}

	got := out[0]
	if got.Confirmation != "alice-1" || got.Username != "alice" || got.SeatCount != 3 {
		t.Fatalf("first record = %+v", got)
	}
	if !got.Showtime.Equal(showtime) {
		t.Fatalf("showtime = %s, want %s", got.Showtime, showtime)
	}
	if got.SeatList() != "m1, m2, sb7" {
		t.Fatalf("seats = %q", got.SeatList())
	}
}

func TestUnconfirmedPlaceholderRoundTrip(t *testing.T) {
	store := NewReservationStore(t.TempDir())
	ctx := context.Background()

	in := []domain.Reservation{{
		Username:  "alice",
		Showtime:  showtime,
		Seats:     []string{"m1"},
		SeatCount: 1,
	}}
	if err := store.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	out, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d, want 1", len(out))
	}
	if out[0].Confirmation != "" {
		t.Fatalf("confirmation = %q, want empty", out[0].Confirmation)
	}
}

func TestMissingFileLoadsEmpty(t *testing.T) {
	store := NewReservationStore(t.TempDir())
	out, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("loaded %d from a missing file", len(out))
	}
}

func TestLegacyTrailingSeparator(t *testing.T) {
	dir := t.TempDir()
	// files written by the terminal edition end the seat line with ", "
	raw := "newReservation\n" +
		"Confirmation Code:\n" +
		"alice-1\n" +
		"alice\n" +
		"12-26-2020 20:30\n" +
		"Number of seats reserved:\n" +
		"2\n" +
		"Seats Reserved:\n" +
		"m1, m2, \n" +
		"endReservation\n"
	if err := os.WriteFile(filepath.Join(dir, "reservations.txt"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewReservationStore(dir)
	out, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d, want 1", len(out))
	}
	got := out[0]
	if len(got.Seats) != got.SeatCount {
		t.Fatalf("seat list length %d disagrees with seat count %d: %q",
			len(got.Seats), got.SeatCount, got.Seats)
	}
	if got.SeatList() != "m1, m2" {
		t.Fatalf("seats = %q, want %q", got.SeatList(), "m1, m2")
	}
}

func TestMalformedRecordIsSkipped(t *testing.T) {
	dir := t.TempDir()
	raw := "newReservation\n" +
		"Confirmation Code:\n" +
		"alice-1\n" +
		"alice\n" +
		"not a datetime\n" +
		"Number of seats reserved:\n" +
		"1\n" +
		"Seats Reserved:\n" +
		"m1\n" +
		"endReservation\n" +
		"newReservation\n" +
		"Confirmation Code:\n" +
		"bob-1\n" +
		"bob\n" +
		"12-26-2020 20:30\n" +
		"Number of seats reserved:\n" +
		"2\n" +
		"Seats Reserved:\n" +
		"eb1, eb2\n" +
		"endReservation\n"
	if err := os.WriteFile(filepath.Join(dir, "reservations.txt"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewReservationStore(dir)
	out, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d, want only the valid record", len(out))
	}
	if out[0].Confirmation != "bob-1" || out[0].SeatList() != "eb1, eb2" {
		t.Fatalf("record = %+v", out[0])
	}
}
