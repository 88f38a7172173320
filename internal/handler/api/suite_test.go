//go:build unit

package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/domain/contact"
	"detailing-api/internal/handler"
	"detailing-api/internal/handler/api"
	"detailing-api/internal/idempotency"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/config"
	"detailing-api/internal/ratelimit"
)

const allowedOrigin = "https://elitedetailing.com"

// testNow anchors the mock clock; appointment dates in fixtures are relative
// to this day.
var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type fakeBookingUseCase struct {
	configured bool
	calls      []*booking.Submission
	rec        *booking.Record
	err        error
}

func (f *fakeBookingUseCase) Configured() bool { return f.configured }

func (f *fakeBookingUseCase) CreateBooking(_ context.Context, sub *booking.Submission) (*booking.Record, error) {
	f.calls = append(f.calls, sub)
	if f.err != nil {
		return nil, f.err
	}
	if f.rec != nil {
		return f.rec, nil
	}
	return &booking.Record{ID: "bkg_123", Submission: *sub}, nil
}

type fakeContactUseCase struct {
	configured bool
	calls      []*contact.Submission
	rec        *contact.Record
	demo       bool
	err        error
}

func (f *fakeContactUseCase) Configured() bool { return f.configured }

func (f *fakeContactUseCase) SubmitContact(_ context.Context, sub *contact.Submission) (*contact.Record, bool, error) {
	f.calls = append(f.calls, sub)
	if f.err != nil {
		return nil, false, f.err
	}
	if f.demo {
		return nil, true, nil
	}
	if f.rec != nil {
		return f.rec, false, nil
	}
	return &contact.Record{ID: "ct_123", Submission: *sub}, false, nil
}

type fakeEmailUseCase struct {
	configured bool
	calls      []*booking.Submission
	emailID    string
	demo       bool
	err        error
}

func (f *fakeEmailUseCase) Configured() bool { return f.configured }

func (f *fakeEmailUseCase) SendConfirmation(_ context.Context, sub *booking.Submission) (string, bool, error) {
	f.calls = append(f.calls, sub)
	if f.err != nil {
		return "", false, f.err
	}
	if f.demo {
		return "", true, nil
	}
	if f.emailID != "" {
		return f.emailID, false, nil
	}
	return "em_123", false, nil
}

// fixture wires the full middleware stack and real in-memory limiter and
// idempotency store around fake use cases.
type fixture struct {
	router   *gin.Engine
	clock    *clock.MockClock
	store    idempotency.Store
	bookings *fakeBookingUseCase
	contacts *fakeContactUseCase
	emails   *fakeEmailUseCase
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	clk := clock.NewMockClock(testNow)
	store := idempotency.NewMemoryStore(cfg.RateLimit.IdempotencyTTL, clk)
	limiter := ratelimit.NewMemoryLimiter(map[ratelimit.Class]ratelimit.Rule{
		ratelimit.ClassBooking: {Max: cfg.RateLimit.BookingMax, Window: cfg.RateLimit.BookingWindow},
		ratelimit.ClassContact: {Max: cfg.RateLimit.ContactMax, Window: cfg.RateLimit.ContactWindow},
		ratelimit.ClassEmail:   {Max: cfg.RateLimit.EmailMax, Window: cfg.RateLimit.EmailWindow},
	}, clk)

	f := &fixture{
		clock:    clk,
		store:    store,
		bookings: &fakeBookingUseCase{configured: true},
		contacts: &fakeContactUseCase{configured: true},
		emails:   &fakeEmailUseCase{configured: true},
	}

	engine := gin.New()
	handler.NewRouter(engine, cfg, limiter,
		api.NewBookingHandler(f.bookings, store, clk),
		api.NewContactHandler(f.contacts, store, clk),
		api.NewEmailHandler(f.emails, store, clk),
	)
	f.router = engine
	return f
}

func originHeaders(extra ...map[string]string) map[string]string {
	h := map[string]string{"Origin": allowedOrigin}
	for _, e := range extra {
		for k, v := range e {
			h[k] = v
		}
	}
	return h
}

func validBookingBody() map[string]any {
	return map[string]any{
		"customer_name":    "John Smith",
		"customer_email":   "john@example.com",
		"customer_phone":   "(603) 275-7513",
		"package_name":     "Essential Detail",
		"service_category": "auto",
		"vehicle_size":     "medium",
		"appointment_date": "2026-03-16",
		"appointment_time": "2:00 PM",
		"total_price":      199,
	}
}

func validContactBody() map[string]any {
	return map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "I would like my jet detailed next month.",
	}
}
