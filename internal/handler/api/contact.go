package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	reqdto "detailing-api/internal/handler/dto/request"
	resdto "detailing-api/internal/handler/dto/response"
	"detailing-api/internal/handler/httperr"
	"detailing-api/internal/handler/middleware"
	"detailing-api/internal/idempotency"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/errs"
	"detailing-api/internal/usecase"
)

const contactThanks = "Thank you for your message! We will get back to you soon."

type ContactHandler struct {
	contacts    usecase.ContactUseCase
	idempotency idempotency.Store
	clock       clock.Clock
}

func NewContactHandler(contacts usecase.ContactUseCase, store idempotency.Store, clk clock.Clock) *ContactHandler {
	return &ContactHandler{
		contacts:    contacts,
		idempotency: store,
		clock:       clk,
	}
}

// Submit handles POST /api/contact/submit.
func (h *ContactHandler) Submit(c *gin.Context) {
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

	if !h.contacts.Configured() {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("data store credentials missing"),
			"Server configuration error. Please contact support.")
		return
	}

	if missing := reqdto.ContactSchema.Missing(body); len(missing) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing required fields"),
			"Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	vals, fieldErrs := reqdto.ContactSchema.Validate(body, h.clock.Now())
	if fieldErrs != nil {
		httperr.AbortWithDetails(c, http.StatusBadRequest, fieldErrs, "Validation failed", fieldErrs)
		return
	}

	sub := reqdto.ContactFromSanitized(vals, middleware.ClientIP(c))
	rec, demo, err := h.contacts.SubmitContact(c.Request.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotConfigured):
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Server configuration error. Please contact support.")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Failed to submit contact form. Please try again or call us at 603-275-7513.")
		}
		return
	}

	if demo {
		g.respond(c, http.StatusOK, resdto.Envelope{
			Success: true,
			Demo:    true,
			Message: contactThanks,
		})
		return
	}

	g.respond(c, http.StatusOK, resdto.Envelope{
		Success: true,
		Data:    resdto.FromContactRecord(rec),
		Message: contactThanks,
	})
}
