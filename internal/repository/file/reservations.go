// Package file persists reservations and users in the line-oriented text
// format the terminal edition of this system used, so existing data files
// keep loading.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"boxoffice/internal/domain"
)

const (
	beginMarker = "newReservation"
	endMarker   = "endReservation"

	// unconfirmedPlaceholder stands in for an empty confirmation number on
	// disk; the historical format has no empty lines in that position.
	unconfirmedPlaceholder = "Reservation not Confirmed"
)

type ReservationStore struct {
	path string
}

func NewReservationStore(dir string) *ReservationStore {
	return &ReservationStore{path: filepath.Join(dir, "reservations.txt")}
}

// LoadAll reads every reservation record from the data file. A missing or
// unreadable file degrades to an empty list; a malformed record is skipped
// without aborting the rest.
func (s *ReservationStore) LoadAll(_ context.Context) ([]domain.Reservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	var out []domain.Reservation
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() != beginMarker {
			continue
		}
		res, err := parseRecord(sc)
		if err != nil {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// parseRecord consumes one framed reservation record. Layout, line by line:
// header, confirmation number, username, show datetime, header, seat count,
// header, seat list.
func parseRecord(sc *bufio.Scanner) (domain.Reservation, error) {
	lines := make([]string, 0, 8)
	for len(lines) < 8 && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) < 8 {
		return domain.Reservation{}, fmt.Errorf("truncated record")
	}

	confirmation := lines[1]
	if confirmation == unconfirmedPlaceholder {
		confirmation = ""
	}

	showtime, err := time.ParseInLocation(domain.TimeSlotLayout, lines[3], time.UTC)
	if err != nil {
		return domain.Reservation{}, err
	}

	count, err := strconv.Atoi(lines[5])
	if err != nil {
		return domain.Reservation{}, err
	}

	// the historical writer emitted a trailing ", " after the last seat code
	seatLine := strings.TrimSuffix(lines[7], ", ")
	var seats []string
	if seatLine != "" {
		seats = strings.Split(seatLine, ", ")
	}

	return domain.Reservation{
		Confirmation: confirmation,
		Username:     lines[2],
		Showtime:     showtime,
		Seats:        seats,
		SeatCount:    count,
	}, nil
}

// SaveAll rewrites the data file with the given reservations.
func (s *ReservationStore) SaveAll(_ context.Context, reservations []domain.Reservation) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, res := range reservations {
		confirmation := res.Confirmation
		if confirmation == "" {
			confirmation = unconfirmedPlaceholder
		}
		fmt.Fprintln(w, beginMarker)
		fmt.Fprintln(w, "Confirmation Code:")
		fmt.Fprintln(w, confirmation)
		fmt.Fprintln(w, res.Username)
		fmt.Fprintln(w, res.Showtime.Format(domain.TimeSlotLayout))
		fmt.Fprintln(w, "Number of seats reserved:")
		fmt.Fprintln(w, res.SeatCount)
		fmt.Fprintln(w, "Seats Reserved:")
		fmt.Fprintln(w, res.SeatList())
		fmt.Fprintln(w, endMarker)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
