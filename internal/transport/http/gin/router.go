package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"boxoffice/internal/auth"
	"boxoffice/internal/ledger"
	redisrepo "boxoffice/internal/repository/redis"
	"boxoffice/internal/schedule"
	"boxoffice/internal/service"
	"boxoffice/internal/service/account"
	"boxoffice/internal/service/booking"
	"boxoffice/internal/venue"
)

func NewRouter(
	svcs *service.Services,
	tokens *auth.TokenManager,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/signup", handleSignUp(svcs))
	r.POST("/auth/login", handleSignIn(svcs))
	r.GET("/shows", handleListShows(svcs))
	r.GET("/shows/:index/seats", handleShowSeats(svcs))

	// Holder API
	my := r.Group("/", AuthRequired(tokens))
	{
		my.POST("/bookings", handleOpenBooking(svcs))
		my.POST("/bookings/:id/seats", handleClaimSeats(svcs, idem))
		my.DELETE("/bookings/:id/seats", handleReleaseSeats(svcs))
		my.GET("/my/reservations", handleListReservations(svcs))
		my.POST("/my/reservations/:index/cancel", handleCancelSeats(svcs))
		my.POST("/my/checkout", handleCheckout(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Sign up
// @Param    req body  SignUpRequest true "payload"
// @Success  201 {object} TokenResponse
// @Failure  409 {object} ErrorResponse
// @Router   /auth/signup [post]
func handleSignUp(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		token, err := svcs.Account.SignUp(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, TokenResponse{Token: token})
	}
}

// @Summary  Sign in
// @Param    req body  SignInRequest true "payload"
// @Success  200 {object} TokenResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleSignIn(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		token, err := svcs.Account.SignIn(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

// @Summary  List show times
// @Success  200 {array} booking.ShowSlot
// @Router   /shows [get]
func handleListShows(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		shows := svcs.Booking.Shows(c.Request.Context())
		// ETag + Cache-Control 60s, the season never changes at runtime
		writeJSONWithCache(c, http.StatusOK, shows, "public, max-age=60", true)
	}
}

// @Summary  List free seats for a show
// @Param    index  path  int  true  "Show index (1-based)"
// @Success  200 {array} domain.SectionAvailability
// @Failure  404 {object} ErrorResponse
// @Router   /shows/{index}/seats [get]
func handleShowSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := parseIndexParam(c, "index")
		if !ok {
			return
		}
		seats, err := svcs.Booking.Availability(c.Request.Context(), index)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, seats, "public, max-age=15", true)
	}
}

// @Summary  Open a draft booking
// @Param    req body  OpenBookingRequest true "payload"
// @Success  201 {object} booking.BookingRef
// @Failure  404 {object} ErrorResponse
// @Router   /bookings [post]
func handleOpenBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OpenBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		ref, err := svcs.Booking.OpenBooking(c.Request.Context(), currentUsername(c), req.ShowIndex)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, ref)
	}
}

type claimResponse struct {
	BookingID string `json:"booking_id"`
	Seats     string `json:"seats"`
}

// @Summary  Claim seats on a booking (idempotent)
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Param    req body  SeatBatchRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} claimResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "seat taken / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings/{id}/seats [post]
func handleClaimSeats(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, ok := parseBookingID(c)
		if !ok {
			return
		}
		var req SeatBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemClaim(handle.String(), idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		err := svcs.Booking.ClaimSeats(
			c.Request.Context(),
			currentUsername(c),
			handle,
			req.Seats,
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, booking.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := claimResponse{BookingID: handle.String(), Seats: req.Seats}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Release seats from a booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Param    req body  SeatBatchRequest true "payload"
// @Success  200 {object} claimResponse
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id}/seats [delete]
func handleReleaseSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, ok := parseBookingID(c)
		if !ok {
			return
		}
		var req SeatBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		err := svcs.Booking.ReleaseSeats(
			c.Request.Context(),
			currentUsername(c),
			handle,
			req.Seats,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, claimResponse{BookingID: handle.String(), Seats: req.Seats})
	}
}

// @Summary  List own reservations
// @Success  200 {array} booking.ReservationView
// @Router   /my/reservations [get]
func handleListReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := svcs.Booking.Reservations(c.Request.Context(), currentUsername(c))
		c.JSON(http.StatusOK, view)
	}
}

// @Summary  Cancel seats from a reservation
// @Param    index  path  int  true  "Reservation index (1-based, from /my/reservations)"
// @Param    req body  CancelSeatsRequest true "payload"
// @Success  200 {array} booking.ReservationView
// @Failure  404 {object} ErrorResponse
// @Router   /my/reservations/{index}/cancel [post]
func handleCancelSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := parseIndexParam(c, "index")
		if !ok {
			return
		}
		var req CancelSeatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		username := currentUsername(c)
		err := svcs.Booking.CancelSeats(c.Request.Context(), username, index, req.Seats)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, svcs.Booking.Reservations(c.Request.Context(), username))
	}
}

// @Summary  Check out: confirm drafts and get receipts
// @Success  200 {array} booking.Receipt
// @Router   /my/checkout [post]
func handleCheckout(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		receipts := svcs.Booking.Checkout(c.Request.Context(), currentUsername(c))
		c.JSON(http.StatusOK, receipts)
	}
}

// --- Helpers ---

func parseIndexParam(c *gin.Context, name string) (int, bool) {
	s := c.Param(name)
	v, err := strconv.Atoi(s)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid booking id")
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// account service
	case errors.Is(err, account.ErrUserExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		return
	case errors.Is(err, account.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid username"})
		return
	case errors.Is(err, account.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication failed"})
		return
	// booking service
	case errors.Is(err, booking.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty seat batch"})
		return
	case errors.Is(err, booking.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
		return
	// ledger
	case errors.Is(err, ledger.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	// schedule
	case errors.Is(err, schedule.ErrOutOfRange):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no show at that index"})
		return
	case errors.Is(err, schedule.ErrUnknownShowtime):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown show time"})
		return
	// venue
	case errors.Is(err, venue.ErrSeatDoesNotExist):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, venue.ErrSeatOverbooked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
