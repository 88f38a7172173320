package middleware

import (
	"math"

	"github.com/gin-gonic/gin"

	"detailing-api/internal/handler/httperr"
	"detailing-api/internal/pkg/errs"
	"detailing-api/internal/ratelimit"
)

// RateLimit caps requests per client for one endpoint class. Denials report
// the remaining wait so well-behaved clients can back off instead of
// hammering the window boundary.
func RateLimit(limiter ratelimit.Limiter, class ratelimit.Class) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), ClientIP(c), class)
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			httperr.AbortRateLimited(c,
				errs.New("rate limit exceeded"),
				"Too many requests. Please try again later.",
				retryAfter)
			return
		}
		c.Next()
	}
}
