package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"detailing-api/internal/pkg/config"
)

// NewCORSMiddleware allows only the configured origins; the matched origin is
// echoed back, never a wildcard. X-Idempotency-Key is allowed so retried
// submissions can carry their dedup token cross-origin.
func NewCORSMiddleware(cfg config.SecurityConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           cfg.CORSMaxAge,
		// The frontend's fetch wrapper treats any non-200 preflight as a
		// failure, so answer 200 rather than the default 204.
		OptionsResponseStatusCode: http.StatusOK,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowedOrigins)
	return cors.New(corsCfg)
}

// SecurityHeaders hardens every response against clickjacking, MIME sniffing
// and referrer leakage.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
