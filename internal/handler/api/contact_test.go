//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	resdto "detailing-api/internal/handler/dto/response"
	"detailing-api/tests/common/httptest"
)

type ContactHandlerTestSuite struct {
	suite.Suite
	f *fixture
}

func (s *ContactHandlerTestSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func TestContactHandlerSuite(t *testing.T) {
	suite.Run(t, new(ContactHandlerTestSuite))
}

const contactURL = "/api/contact/submit"

func (s *ContactHandlerTestSuite) TestSubmitSuccess() {
	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, validContactBody(), originHeaders())

	var resp struct {
		Success bool               `json:"success"`
		Data    resdto.ContactData `json:"data"`
		Message string             `json:"message"`
		Demo    bool               `json:"demo"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

	s.True(resp.Success)
	s.False(resp.Demo)
	s.Equal("Thank you for your message! We will get back to you soon.", resp.Message)
	s.Equal("ct_123", resp.Data.ID)
	s.Equal("Jane Doe", resp.Data.Name)

	s.Require().Len(s.f.contacts.calls, 1)
	sub := s.f.contacts.calls[0]
	s.Equal("jane@example.com", sub.Email)
	s.NotEmpty(sub.SourceIP, "the caller's address is recorded")
	s.Nil(sub.Phone)
}

func (s *ContactHandlerTestSuite) TestSubmitSanitizesMessage() {
	body := validContactBody()
	body["message"] = `<script>alert("xss")</script> please call me back`

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, body, originHeaders())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

	s.Require().Len(s.f.contacts.calls, 1)
	s.Equal("&lt;script&gt;alert(&#34;xss&#34;)&lt;/script&gt; please call me back",
		s.f.contacts.calls[0].Message)
}

func (s *ContactHandlerTestSuite) TestSubmitOptionalPhone() {
	body := validContactBody()
	body["phone"] = "(603) 275-7513"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, body, originHeaders())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

	s.Require().Len(s.f.contacts.calls, 1)
	s.Require().NotNil(s.f.contacts.calls[0].Phone)
	s.Equal("(603) 275-7513", *s.f.contacts.calls[0].Phone)
}

func (s *ContactHandlerTestSuite) TestSubmitInvalidPhoneFails() {
	body := validContactBody()
	body["phone"] = "call me"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, body, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Validation failed")
	s.Empty(s.f.contacts.calls)
}

func (s *ContactHandlerTestSuite) TestSubmitMissingFields() {
	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, map[string]any{}, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Missing required fields: name, email, message")
	s.Empty(s.f.contacts.calls)
}

func (s *ContactHandlerTestSuite) TestSubmitMessageTooShort() {
	body := validContactBody()
	body["message"] = "too short"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, body, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Validation failed")

	var resp struct {
		Details map[string]string `json:"details"`
	}
	httptest.DecodeResponseBody(s.T(), w.Body, &resp)
	s.Equal("Message must be at least 10 characters", resp.Details["message"])
}

func (s *ContactHandlerTestSuite) TestSubmitDemoMode() {
	s.f.contacts.demo = true

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, validContactBody(), originHeaders())

	var resp struct {
		Success bool `json:"success"`
		Demo    bool `json:"demo"`
		Data    any  `json:"data"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.True(resp.Success)
	s.True(resp.Demo)
	s.Nil(resp.Data, "demo responses carry no record")
}

func (s *ContactHandlerTestSuite) TestSubmitConfigCheckPrecedesValidation() {
	s.f.contacts.configured = false

	body := validContactBody()
	body["email"] = "not-an-email"

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, body, originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Server configuration error. Please contact support.")
	s.Empty(s.f.contacts.calls)
}

func (s *ContactHandlerTestSuite) TestSubmitStoreFailure() {
	s.f.contacts.err = errors.New("upstream exploded")

	w := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, validContactBody(), originHeaders())
	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError,
		"Failed to submit contact form. Please try again or call us at 603-275-7513.")
}

func (s *ContactHandlerTestSuite) TestSubmitIdempotentReplay() {
	headers := originHeaders(map[string]string{"X-Idempotency-Key": "idem-contact"})

	first := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, validContactBody(), headers)
	httptest.AssertSuccessResponse(s.T(), first, http.StatusOK, nil)

	second := httptest.PerformRequest(s.T(), s.f.router, http.MethodPost, contactURL, validContactBody(), headers)
	httptest.AssertSuccessResponse(s.T(), second, http.StatusOK, nil)

	s.Equal(first.Body.Bytes(), second.Body.Bytes())
	s.Len(s.f.contacts.calls, 1)
}
