package api

import (
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

const emailDemoMsg = "Email service not configured. Booking confirmed but no email sent."

type EmailHandler struct {
	emails      usecase.EmailUseCase
	idempotency idempotency.Store
	clock       clock.Clock
}

func NewEmailHandler(emails usecase.EmailUseCase, store idempotency.Store, clk clock.Clock) *EmailHandler {
	return &EmailHandler{
		emails:      emails,
		idempotency: store,
		clock:       clk,
	}
}

// SendConfirmation handles POST /api/emails/send-confirmation. The body is a
// booking as the client holds it, so it goes through the same validation and
// sanitization as booking creation; the rendered email only ever sees
// sanitized values.
func (h *EmailHandler) SendConfirmation(c *gin.Context) {
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

	// Without provider credentials the booking stands and no email goes out;
	// that is a demo success, reported before any field validation.
	if !h.emails.Configured() {
		g.respond(c, http.StatusOK, resdto.Envelope{
			Success: true,
			Demo:    true,
			Message: emailDemoMsg,
		})
		return
	}

	if missing := reqdto.EmailSchema.Missing(body); len(missing) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing required fields"),
			"Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	vals, fieldErrs := reqdto.EmailSchema.Validate(body, h.clock.Now())
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
	emailID, demo, err := h.emails.SendConfirmation(c.Request.Context(), sub)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			"Failed to send confirmation email")
		return
	}

	if demo {
		g.respond(c, http.StatusOK, resdto.Envelope{
			Success: true,
			Demo:    true,
			Message: emailDemoMsg,
		})
		return
	}

	g.respond(c, http.StatusOK, resdto.Envelope{
		Success: true,
		Data:    resdto.EmailData{EmailID: emailID},
		Message: "Confirmation email sent successfully",
	})
}
