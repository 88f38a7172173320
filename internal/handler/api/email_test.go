//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"detailing-api/tests/common/httptest"
)

type EmailHandlerTestSuite struct {
	suite.Suite
	f *fixture
}

func (s *EmailHandlerTestSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func TestEmailHandlerSuite(t *testing.T) {
	suite.Run(t, new(EmailHandlerTestSuite))
}

const emailURL = "/api/emails/send-confirmation"

func validEmailBody() map[string]any {
	body := validBookingBody()
	// The confirmation payload is the booking minus the phone.
	delete(body, "customer_phone")
	return body
}

func (s *EmailHandlerTestSuite) TestSendConfirmationSuccess() {
	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, validEmailBody(), originHeaders())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			EmailID string `json:"emailId"`
		} `json:"data"`
		Message string `json:"message"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

	s.True(resp.Success)
	s.Equal("em_123", resp.Data.EmailID)
	s.Equal("Confirmation email sent successfully", resp.Message)

	s.Require().Len(s.f.emails.calls, 1)
	sub := s.f.emails.calls[0]
	s.Equal("john@example.com", sub.CustomerEmail)
	s.Equal("02:00 PM", sub.AppointmentTime)
}

func (s *EmailHandlerTestSuite) TestSendConfirmationPhoneNotRequired() {
	body := validEmailBody()
	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, body, originHeaders())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
}

func (s *EmailHandlerTestSuite) TestSendConfirmationMissingFields() {
	body := validEmailBody()
	delete(body, "customer_email")
	delete(body, "appointment_date")

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, body, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Missing required fields: customer_email, appointment_date")
	s.Empty(s.f.emails.calls)
}

func (s *EmailHandlerTestSuite) TestSendConfirmationRejectsUnknownPackage() {
	body := validEmailBody()
	body["package_name"] = "Totally Free Detail"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, body, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid package name")
	s.Empty(s.f.emails.calls)
}

func (s *EmailHandlerTestSuite) TestSendConfirmationDemoMode() {
	s.f.emails.demo = true

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, validEmailBody(), originHeaders())

	var resp struct {
		Success bool   `json:"success"`
		Demo    bool   `json:"demo"`
		Message string `json:"message"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.True(resp.Success)
	s.True(resp.Demo)
	s.Equal("Email service not configured. Booking confirmed but no email sent.", resp.Message)
}

func (s *EmailHandlerTestSuite) TestSendConfirmationUnconfiguredSkipsValidation() {
	s.f.emails.configured = false

	// Even a broken field yields the demo success: without credentials the
	// body is never validated.
	body := validEmailBody()
	body["customer_email"] = "not-an-email"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, body, originHeaders())

	var resp struct {
		Success bool   `json:"success"`
		Demo    bool   `json:"demo"`
		Message string `json:"message"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.True(resp.Success)
	s.True(resp.Demo)
	s.Equal("Email service not configured. Booking confirmed but no email sent.", resp.Message)
	s.Empty(s.f.emails.calls, "no send is attempted and no validation runs")
}

func (s *EmailHandlerTestSuite) TestSendConfirmationProviderFailure() {
	s.f.emails.err = errors.New("provider rejected the send")

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, validEmailBody(), originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Failed to send confirmation email")
}

func (s *EmailHandlerTestSuite) TestSendConfirmationIdempotentReplay() {
	headers := originHeaders(map[string]string{"X-Idempotency-Key": "idem-email"})

	first := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, validEmailBody(), headers)
	httptest.AssertSuccessResponse(s.T(), first, http.StatusOK, nil)

	second := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, emailURL, validEmailBody(), headers)
	httptest.AssertSuccessResponse(s.T(), second, http.StatusOK, nil)

	s.Equal(first.Body.Bytes(), second.Body.Bytes())
	s.Len(s.f.emails.calls, 1, "only one email goes out")
}
