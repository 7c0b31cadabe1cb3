package httpgin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/auth"
	"boxoffice/internal/ledger"
	"boxoffice/internal/pricing"
	filerepo "boxoffice/internal/repository/file"
	"boxoffice/internal/schedule"
	"boxoffice/internal/service"
	"boxoffice/internal/service/account"
	"boxoffice/internal/service/booking"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog := schedule.New(schedule.Config{})
	calc := pricing.New(pricing.Config{})
	ldg := ledger.New(catalog, logger)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	svcs := service.NewServices(
		ldg,
		catalog,
		calc,
		filerepo.NewReservationStore(dir),
		filerepo.NewUserStore(dir),
		tokens,
		nil, nil, nil,
		logger,
		service.Config{Account: account.Config{BcryptCost: 4}},
	)
	return NewRouter(svcs, tokens, nil, logger)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", SignUpRequest{Username: username, Password: "hunter22"})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: status %d, body %s", w.Code, w.Body)
	}
	var resp TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return resp.Token
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/my/reservations", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSignupConflict(t *testing.T) {
	r := newTestRouter(t)
	signUp(t, r, "alice")
	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", SignUpRequest{Username: "alice", Password: "other"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)
	signUp(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", SignInRequest{Username: "alice", Password: "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", SignInRequest{Username: "alice", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", w.Code)
	}
}

func TestListShows(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/shows", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var shows []booking.ShowSlot
	if err := json.Unmarshal(w.Body.Bytes(), &shows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(shows) != 22 {
		t.Fatalf("shows = %d, want 22", len(shows))
	}
	if shows[0].Index != 1 || shows[0].Showtime != "12-23-2020 18:30" {
		t.Fatalf("first show = %+v", shows[0])
	}
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "alice")

	// open a draft for the first show
	w := doJSON(t, r, http.MethodPost, "/bookings", token, OpenBookingRequest{ShowIndex: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("open booking: status %d, body %s", w.Code, w.Body)
	}
	var ref booking.BookingRef
	if err := json.Unmarshal(w.Body.Bytes(), &ref); err != nil {
		t.Fatalf("decode ref: %v", err)
	}

	// claim two seats
	w = doJSON(t, r, http.MethodPost, "/bookings/"+ref.ID+"/seats", token, SeatBatchRequest{Seats: "m1, m2"})
	if w.Code != http.StatusCreated {
		t.Fatalf("claim: status %d, body %s", w.Code, w.Body)
	}

	// another holder collides on m1
	other := signUp(t, r, "bob")
	w = doJSON(t, r, http.MethodPost, "/bookings", other, OpenBookingRequest{ShowIndex: 1})
	var bobRef booking.BookingRef
	if err := json.Unmarshal(w.Body.Bytes(), &bobRef); err != nil {
		t.Fatalf("decode ref: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/bookings/"+bobRef.ID+"/seats", other, SeatBatchRequest{Seats: "m1"})
	if w.Code != http.StatusConflict {
		t.Fatalf("conflicting claim: status %d, want 409", w.Code)
	}

	// unknown seat code
	w = doJSON(t, r, http.MethodPost, "/bookings/"+ref.ID+"/seats", token, SeatBatchRequest{Seats: "z99"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad seat: status %d, want 400", w.Code)
	}

	// checkout confirms and prices the draft
	w = doJSON(t, r, http.MethodPost, "/my/checkout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("checkout: status %d, body %s", w.Code, w.Body)
	}
	var receipts []booking.Receipt
	if err := json.Unmarshal(w.Body.Bytes(), &receipts); err != nil {
		t.Fatalf("decode receipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("receipts = %d, want 1", len(receipts))
	}
	if receipts[0].Confirmation != "alice-1" {
		t.Fatalf("confirmation = %q, want alice-1", receipts[0].Confirmation)
	}
	if receipts[0].Breakdown.GrandTotal != 70 {
		t.Fatalf("grand total = %v, want 70", receipts[0].Breakdown.GrandTotal)
	}

	// the confirmed reservation shows up in the holder's list
	w = doJSON(t, r, http.MethodGet, "/my/reservations", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reservations: status %d", w.Code)
	}
	var view []booking.ReservationView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view) != 1 || view[0].Confirmation != "alice-1" || view[0].SeatCount != 2 {
		t.Fatalf("view = %+v", view)
	}
}

func TestCancelSeats(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/bookings", token, OpenBookingRequest{ShowIndex: 1})
	var ref booking.BookingRef
	if err := json.Unmarshal(w.Body.Bytes(), &ref); err != nil {
		t.Fatalf("decode ref: %v", err)
	}
	doJSON(t, r, http.MethodPost, "/bookings/"+ref.ID+"/seats", token, SeatBatchRequest{Seats: "sb1, sb2"})
	doJSON(t, r, http.MethodPost, "/my/checkout", token, nil)

	w = doJSON(t, r, http.MethodPost, "/my/reservations/1/cancel", token, CancelSeatsRequest{Seats: "sb1"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status %d, body %s", w.Code, w.Body)
	}
	var view []booking.ReservationView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view) != 1 || view[0].SeatCount != 1 {
		t.Fatalf("view after cancel = %+v", view)
	}

	// the freed seat can be claimed by someone else
	other := signUp(t, r, "bob")
	w = doJSON(t, r, http.MethodPost, "/bookings", other, OpenBookingRequest{ShowIndex: 1})
	var bobRef booking.BookingRef
	if err := json.Unmarshal(w.Body.Bytes(), &bobRef); err != nil {
		t.Fatalf("decode ref: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/bookings/"+bobRef.ID+"/seats", other, SeatBatchRequest{Seats: "sb1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("reclaim freed seat: status %d, body %s", w.Code, w.Body)
	}
}

func TestCancelUnknownIndex(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "alice")
	w := doJSON(t, r, http.MethodPost, "/my/reservations/7/cancel", token, CancelSeatsRequest{Seats: "m1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestOpenBookingUnknownShow(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "alice")
	w := doJSON(t, r, http.MethodPost, "/bookings", token, OpenBookingRequest{ShowIndex: 99})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
