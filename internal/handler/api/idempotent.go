package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"detailing-api/internal/handler/httperr"
	"detailing-api/internal/idempotency"
	"detailing-api/internal/pkg/errs"
)

const jsonContentType = "application/json; charset=utf-8"

// idemGuard ties a request's idempotency claim to its final response.
// Success responses are marshaled once and cached as raw bytes, so a retry
// replays a byte-identical body. Failed requests release the claim so the
// client's retry is not locked out for the TTL.
type idemGuard struct {
	store idempotency.Store
	key   string
	done  bool
}

// claimIdempotency resolves the X-Idempotency-Key header. It returns nil
// when the response has already been written: either a cached replay or a
// conflict with an in-flight request holding the same key.
func claimIdempotency(c *gin.Context, store idempotency.Store) *idemGuard {
	key := c.GetHeader("X-Idempotency-Key")
	if key == "" || store == nil {
		return &idemGuard{}
	}

	cached, err := store.Begin(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, idempotency.ErrInFlight) {
			httperr.AbortWithError(c, http.StatusConflict, err,
				"This request is already being processed.")
			return nil
		}
		// A broken idempotency backend must not block submissions; proceed
		// without dedup.
		slog.Warn("idempotency store unavailable, proceeding without dedup", "error", err)
		return &idemGuard{}
	}
	if cached != nil {
		c.Data(cached.Status, jsonContentType, cached.Body)
		c.Abort()
		return nil
	}

	return &idemGuard{store: store, key: key}
}

// respond writes the success payload and records it under the claimed key.
func (g *idemGuard) respond(c *gin.Context, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.Wrap(err, "failed to encode response"),
			"An unexpected error occurred. Please try again or contact support at 603-275-7513.")
		return
	}

	if g.key != "" {
		if err := g.store.Complete(c.Request.Context(), g.key, idempotency.Response{
			Status: status,
			Body:   body,
		}); err != nil {
			slog.Warn("failed to record idempotent response", "error", err)
		}
	}
	g.done = true
	c.Data(status, jsonContentType, body)
}

// release drops an unconsumed claim. Call it deferred; it is a no-op after a
// successful respond.
func (g *idemGuard) release(c *gin.Context) {
	if g.done || g.key == "" {
		return
	}
	if err := g.store.Abandon(c.Request.Context(), g.key); err != nil {
		slog.Warn("failed to release idempotency claim", "error", err)
	}
}
