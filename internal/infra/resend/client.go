// Package resend sends transactional mail through the Resend REST API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/infra"
	"detailing-api/internal/pkg/config"
)

const endpoint = "https://api.resend.com/emails"

type Client struct {
	apiKey string
	from   string
	http   *http.Client
}

func New(cfg config.EmailConfig) *Client {
	return &Client{
		apiKey: cfg.ResendAPIKey,
		from:   cfg.From,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// SendBookingConfirmation renders and sends the confirmation email, returning
// the provider's email ID.
func (c *Client) SendBookingConfirmation(ctx context.Context, sub *booking.Submission) (string, error) {
	if !c.Configured() {
		return "", infra.WrapStoreErr("email provider key missing", nil, infra.KindNotConfigured)
	}

	longDate := formatLongDate(sub.AppointmentDate)
	html, err := renderConfirmation(sub, longDate)
	if err != nil {
		return "", infra.WrapStoreErr("failed to render confirmation email", err)
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{sub.CustomerEmail},
		Subject: fmt.Sprintf("Booking Confirmed - %s at %s", longDate, sub.AppointmentTime),
		HTML:    html,
	})
	if err != nil {
		return "", infra.WrapStoreErr("failed to encode email request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", infra.WrapStoreErr("failed to build email request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", infra.WrapStoreErr("email request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", infra.WrapStoreErr("failed to read email response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", infra.WrapStoreErr(fmt.Sprintf("email provider returned status %d", resp.StatusCode), nil)
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", infra.WrapStoreErr("unexpected email response shape", err)
	}
	return out.ID, nil
}

// formatLongDate turns "2006-01-02" into "Monday, January 2, 2006". The date
// has already passed validation; on a parse failure the raw value is shown.
func formatLongDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}
