// Package supabase talks to the hosted data store over its PostgREST API.
// The service-role key lives only in this process; the browser never sees it.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/domain/contact"
	"detailing-api/internal/infra"
	"detailing-api/internal/pkg/config"
)

const (
	bookingsTable = "bookings"
	contactsTable = "contact_submissions"

	// PostgREST surfaces the Postgres undefined_table code in its error body.
	pgUndefinedTable = "42P01"
)

type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

func New(cfg config.SupabaseConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceRoleKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.key != ""
}

func (c *Client) InsertBooking(ctx context.Context, sub *booking.Submission) (*booking.Record, error) {
	var rec booking.Record
	if err := c.insert(ctx, bookingsTable, sub, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) InsertContact(ctx context.Context, sub *contact.Submission) (*contact.Record, error) {
	var rec contact.Record
	if err := c.insert(ctx, contactsTable, sub, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// insert POSTs one row and decodes the returned representation into out.
func (c *Client) insert(ctx context.Context, table string, row any, out any) error {
	if !c.Configured() {
		return infra.WrapStoreErr("data store credentials missing", nil, infra.KindNotConfigured)
	}

	payload, err := json.Marshal([]any{row})
	if err != nil {
		return infra.WrapStoreErr("failed to encode row", err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return infra.WrapStoreErr("failed to build insert request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return infra.WrapStoreErr("insert request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return infra.WrapStoreErr("failed to read insert response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Code == pgUndefinedTable {
			return infra.WrapStoreErr("table does not exist: "+table, nil, infra.KindMissingTable)
		}
		return infra.WrapStoreErr(fmt.Sprintf("insert into %s returned status %d", table, resp.StatusCode), nil)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return infra.WrapStoreErr("unexpected insert response shape", err)
	}
	if err := json.Unmarshal(rows[0], out); err != nil {
		return infra.WrapStoreErr("failed to decode inserted row", err)
	}
	return nil
}
