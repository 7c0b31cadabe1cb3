package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/domain"
	"boxoffice/internal/schedule"
)

// Ledger owns every reservation record in memory and is the only caller
// allowed to request claims and releases from the catalog. Records split into
// two sets: reservations confirmed before or during this run, and the
// in-session working set (open drafts plus previously-confirmed reservations
// touched this run). The confirmation and modified counters live here, behind
// the ledger's lock.
type Ledger struct {
	mu      sync.Mutex
	catalog *schedule.Catalog
	logger  *slog.Logger

	inSession []*domain.Reservation
	confirmed []*domain.Reservation
	drafts    map[uuid.UUID]*domain.Reservation
	modified  int
}

func New(catalog *schedule.Catalog, logger *slog.Logger) *Ledger {
	return &Ledger{
		catalog: catalog,
		logger:  logger,
		drafts:  make(map[uuid.UUID]*domain.Reservation),
	}
}

// Replay seeds the confirmed set from persisted reservations and re-marks
// their seats as occupied. Failures are isolated per reservation inside the
// catalog; replay of the remaining records always continues.
func (l *Ledger) Replay(loaded []domain.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range loaded {
		res := loaded[i]
		l.confirmed = append(l.confirmed, &res)
		l.catalog.Replay(&res, l.logger)
	}
}

// OpenDraft starts a new unconfirmed reservation for a holder and show time
// and returns the handle used to claim and release seats against it.
func (l *Ledger) OpenDraft(username string, showtime time.Time) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := domain.NewReservation(username, showtime)
	handle := uuid.New()
	l.inSession = append(l.inSession, res)
	l.drafts[handle] = res
	return handle
}

func (l *Ledger) draft(handle uuid.UUID, username string) (*domain.Reservation, error) {
	res, ok := l.drafts[handle]
	if !ok || res.Username != username {
		return nil, fmt.Errorf("booking %s: %w", handle, ErrBookingNotFound)
	}
	return res, nil
}

// ClaimSeats reserves a seat batch against an open draft. The batch stops at
// the first failing code; earlier seats in the batch stay claimed. The
// affected show time is returned even on failure, since a partial batch still
// changes occupancy.
func (l *Ledger) ClaimSeats(handle uuid.UUID, username, batch string) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.draft(handle, username)
	if err != nil {
		return time.Time{}, err
	}
	return res.Showtime, l.catalog.Claim(res.Showtime, batch, res)
}

// ReleaseSeats frees seats of an open draft. Codes not present on the draft
// are filtered out before anything is released, so a holder can only free
// seats they actually hold.
func (l *Ledger) ReleaseSeats(handle uuid.UUID, username, batch string) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.draft(handle, username)
	if err != nil {
		return time.Time{}, err
	}
	return res.Showtime, l.releaseOwned(res, batch)
}

func (l *Ledger) releaseOwned(res *domain.Reservation, batch string) error {
	owned := filterOwned(res, batch)
	if owned == "" {
		return nil
	}
	return l.catalog.Release(res.Showtime, owned, res)
}

// viewFor merges the holder's confirmed and in-session reservations into one
// ordered list: by show time, then confirmation number, then an ephemeral
// tie-break assigned here to unconfirmed duplicates. Callers hold l.mu.
func (l *Ledger) viewFor(username string) []*domain.Reservation {
	var view []*domain.Reservation
	number := 0
	for _, set := range [][]*domain.Reservation{l.inSession, l.confirmed} {
		for _, res := range set {
			if res.Username != username {
				number++
				continue
			}
			if !res.Confirmed() {
				res.TieBreak = fmt.Sprintf("temp-%03d", number)
			} else {
				res.TieBreak = ""
			}
			view = append(view, res)
			number++
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		a, b := view[i], view[j]
		if !a.Showtime.Equal(b.Showtime) {
			return a.Showtime.Before(b.Showtime)
		}
		if a.Confirmation != b.Confirmation {
			return a.Confirmation < b.Confirmation
		}
		return a.TieBreak < b.TieBreak
	})
	return view
}

// View returns snapshots of the holder's reservations in display order.
func (l *Ledger) View(username string) []domain.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := l.viewFor(username)
	out := make([]domain.Reservation, len(view))
	for i, res := range view {
		out[i] = *res
		out[i].Seats = append([]string(nil), res.Seats...)
	}
	return out
}

// CancelSeats releases a seat batch from the holder's reservation at the given
// 1-based view index. If the reservation was only in the confirmed set it is
// relocated into the in-session set afterwards and the modified counter is
// bumped; relocating an already in-session reservation is a no-op.
func (l *Ledger) CancelSeats(username string, index int, batch string) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := l.viewFor(username)
	if index < 1 || index > len(view) {
		return time.Time{}, fmt.Errorf("reservation %d: %w", index, schedule.ErrOutOfRange)
	}
	res := view[index-1]

	// relocate even when the batch stops early: seats released before the
	// failure have already changed the reservation
	err := l.releaseOwned(res, batch)
	l.relocate(res)
	return res.Showtime, err
}

func (l *Ledger) relocate(res *domain.Reservation) {
	if !contains(l.confirmed, res) || contains(l.inSession, res) {
		return
	}
	l.confirmed = remove(l.confirmed, res)
	l.inSession = append(l.inSession, res)
	l.modified++
}

// Checkout ends the holder's session. Empty unconfirmed drafts are discarded;
// every other in-session reservation of the holder is returned for its
// receipt. Unconfirmed reservations with seats are confirmed here: the number
// is assigned exactly once, as <username>-<N> with N = the holder's already
// confirmed count plus the reservations modified this run plus one.
func (l *Ledger) Checkout(username string) []domain.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	var receipts []domain.Reservation
	for _, res := range append([]*domain.Reservation(nil), l.inSession...) {
		if res.Username != username {
			continue
		}
		if !res.Confirmed() && res.SeatCount == 0 {
			l.discard(res)
			continue
		}
		if !res.Confirmed() {
			n := l.countConfirmed(username) + l.modified + 1
			res.Confirmation = fmt.Sprintf("%s-%d", username, n)
			l.inSession = remove(l.inSession, res)
			l.confirmed = append(l.confirmed, res)
			l.dropHandle(res)
		}
		snap := *res
		snap.Seats = append([]string(nil), res.Seats...)
		receipts = append(receipts, snap)
	}
	return receipts
}

func (l *Ledger) discard(res *domain.Reservation) {
	l.inSession = remove(l.inSession, res)
	l.dropHandle(res)
}

func (l *Ledger) dropHandle(res *domain.Reservation) {
	for handle, r := range l.drafts {
		if r == res {
			delete(l.drafts, handle)
			return
		}
	}
}

func (l *Ledger) countConfirmed(username string) int {
	n := 0
	for _, res := range l.confirmed {
		if res.Username == username {
			n++
		}
	}
	return n
}

// CompileAll snapshots every reservation worth persisting. Reservations whose
// seat list is empty are never written.
func (l *Ledger) CompileAll() []domain.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.Reservation
	for _, set := range [][]*domain.Reservation{l.inSession, l.confirmed} {
		for _, res := range set {
			if res.SeatCount == 0 {
				continue
			}
			snap := *res
			snap.Seats = append([]string(nil), res.Seats...)
			out = append(out, snap)
		}
	}
	return out
}

// ModifiedCount reports how many previously-confirmed reservations were
// reopened during this run.
func (l *Ledger) ModifiedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modified
}

func filterOwned(res *domain.Reservation, batch string) string {
	var owned []string
	for _, code := range strings.Split(batch, ", ") {
		if res.HasSeat(code) {
			owned = append(owned, code)
		}
	}
	return strings.Join(owned, ", ")
}

func contains(set []*domain.Reservation, res *domain.Reservation) bool {
	for _, r := range set {
		if r == res {
			return true
		}
	}
	return false
}

func remove(set []*domain.Reservation, res *domain.Reservation) []*domain.Reservation {
	for i, r := range set {
		if r == res {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
