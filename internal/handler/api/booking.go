package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"detailing-api/internal/domain/booking"
	reqdto "detailing-api/internal/handler/dto/request"
	resdto "detailing-api/internal/handler/dto/response"
	"detailing-api/internal/handler/httperr"
	"detailing-api/internal/idempotency"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/errs"
	"detailing-api/internal/usecase"
)

type BookingHandler struct {
	bookings    usecase.BookingUseCase
	idempotency idempotency.Store
	clock       clock.Clock
}

func NewBookingHandler(bookings usecase.BookingUseCase, store idempotency.Store, clk clock.Clock) *BookingHandler {
	return &BookingHandler{
		bookings:    bookings,
		idempotency: store,
		clock:       clk,
	}
}

// Create handles POST /api/bookings/create. Field errors are aggregated into
// one response rather than failing on the first bad field.
func (h *BookingHandler) Create(c *gin.Context) {
	g := claimIdempotency(c, h.idempotency)
	if g == nil {
		return
	}
	defer g.release(c)

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	// Credentials are checked before any field work: an unconfigured
	// deployment must answer with the configuration error, not validation
	// noise.
	if !h.bookings.Configured() {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("data store credentials missing"),
			"Server configuration error. Please contact support.")
		return
	}

	if missing := reqdto.BookingSchema.Missing(body); len(missing) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing required fields"),
			"Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	vals, fieldErrs := reqdto.BookingSchema.Validate(body, h.clock.Now())
	if fieldErrs != nil {
		httperr.AbortWithDetails(c, http.StatusBadRequest, fieldErrs, "Validation failed", fieldErrs)
		return
	}

	packageName, _ := vals["package_name"].(string)
	if !booking.ValidPackage(packageName) {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("package name not on whitelist"),
			"Invalid package name")
		return
	}

	sub := reqdto.BookingFromSanitized(vals, body)
	rec, err := h.bookings.CreateBooking(c.Request.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotConfigured):
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Server configuration error. Please contact support.")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Failed to create booking. Please try again.")
		}
		return
	}

	g.respond(c, http.StatusOK, resdto.Envelope{
		Success: true,
		Data:    resdto.FromBookingRecord(rec),
		Message: "Booking created successfully",
	})
}
