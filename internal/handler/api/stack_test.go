//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"detailing-api/internal/pkg/config"
	"detailing-api/tests/common/httptest"
)

// StackTestSuite exercises the full middleware chain around the handlers:
// security headers, origin checks, method handling and rate limiting.
type StackTestSuite struct {
	suite.Suite
}

func TestStackSuite(t *testing.T) {
	suite.Run(t, new(StackTestSuite))
}

func (s *StackTestSuite) TestHealthCheck() {
	f := newFixture(s.T())

	w := httptest.PerformRequest(s.T(), f.router, http.MethodGet, "/health", nil, originHeaders())

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal("ok", resp.Status)
}

func (s *StackTestSuite) TestSecurityHeadersOnEveryResponse() {
	f := newFixture(s.T())

	w := httptest.PerformRequest(s.T(), f.router, http.MethodGet, "/health", nil, originHeaders())
	httptest.AssertHeaders(s.T(), w, map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	})
}

func (s *StackTestSuite) TestWrongMethodRejected() {
	f := newFixture(s.T())

	w := httptest.PerformRequest(s.T(), f.router, http.MethodGet, "/api/bookings/create", nil, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusMethodNotAllowed, "Method not allowed. Use POST.")
}

func (s *StackTestSuite) TestCrossSiteRequestRejected() {
	f := newFixture(s.T())

	// No Origin and no Referer in production mode.
	w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), nil)
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Forbidden: Invalid request origin")
	s.Empty(f.bookings.calls)
}

func (s *StackTestSuite) TestForeignOriginRejected() {
	f := newFixture(s.T())

	// The guard, not the CORS layer, must reject so the origin gets logged
	// and the client receives the JSON envelope.
	w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(),
		map[string]string{"Origin": "https://evil.example"})
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Forbidden: Invalid request origin")
	s.Empty(f.bookings.calls)
}

func (s *StackTestSuite) TestPreflightReturns200() {
	f := newFixture(s.T())

	w := httptest.PerformRequest(s.T(), f.router, http.MethodOptions, bookingURL, nil,
		map[string]string{
			"Origin":                        allowedOrigin,
			"Access-Control-Request-Method": http.MethodPost,
		})
	s.Equal(http.StatusOK, w.Code)
	s.Equal(allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *StackTestSuite) TestDevelopmentSkipsOriginCheck() {
	f := newFixture(s.T(), func(cfg *config.Config) {
		cfg.Server.Environment = "development"
	})

	w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), nil)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
}

func (s *StackTestSuite) TestBookingRateLimit() {
	f := newFixture(s.T(), func(cfg *config.Config) {
		cfg.RateLimit.BookingMax = 2
	})

	for i := 0; i < 2; i++ {
		w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), originHeaders())
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	}

	w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusTooManyRequests, "Too many requests. Please try again later.")

	var resp struct {
		RetryAfter int `json:"retryAfter"`
	}
	httptest.DecodeResponseBody(s.T(), w.Body, &resp)
	s.Greater(resp.RetryAfter, 0)
	s.Len(f.bookings.calls, 2, "denied requests never reach the use case")
}

func (s *StackTestSuite) TestRateLimitClassesAreIndependent() {
	f := newFixture(s.T(), func(cfg *config.Config) {
		cfg.RateLimit.BookingMax = 1
	})

	w := httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), originHeaders())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

	w = httptest.PerformRequest(s.T(), f.router, http.MethodPost, bookingURL, validBookingBody(), originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusTooManyRequests, "")

	// The contact budget is untouched.
	w = httptest.PerformRequest(s.T(), f.router, http.MethodPost, contactURL, validContactBody(), originHeaders())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
}
