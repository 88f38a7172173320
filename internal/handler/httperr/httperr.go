package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the public failure envelope. Error carries only pre-written
// user-facing copy; internal detail stays in the gin error stack for logging.
type Response struct {
	Status     int    `json:"-"`
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Details    any    `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// preserves original error for the logging middleware
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	abort(c, Response{Status: status, Error: msg}, err)
}

// AbortWithDetails additionally attaches a field→reason map for aggregated
// validation failures.
func AbortWithDetails(c *gin.Context, status int, err error, msg string, details any) {
	abort(c, Response{Status: status, Error: msg, Details: details}, err)
}

// AbortRateLimited reports a 429 with the seconds the client should wait.
func AbortRateLimited(c *gin.Context, err error, msg string, retryAfterSeconds int) {
	abort(c, Response{Status: http.StatusTooManyRequests, Error: msg, RetryAfter: retryAfterSeconds}, err)
}

func abort(c *gin.Context, resp Response, err error) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
