//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"detailing-api/internal/handler/middleware"
	"detailing-api/internal/pkg/config"
)

func originRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := config.ServerConfig{Environment: env}
	security := config.SecurityConfig{
		AllowedOrigins: []string{"https://elitedetailing.com", "http://localhost:5173"},
	}

	r := gin.New()
	r.Use(middleware.OriginGuard(server, security))
	r.POST("/submit", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.OPTIONS("/submit", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func performOrigin(r *gin.Engine, method string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/submit", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOriginGuard(t *testing.T) {
	cases := []struct {
		name       string
		env        string
		method     string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "allowed origin passes",
			env:        "production",
			method:     http.MethodPost,
			headers:    map[string]string{"Origin": "https://elitedetailing.com"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "disallowed origin rejected",
			env:        "production",
			method:     http.MethodPost,
			headers:    map[string]string{"Origin": "https://evil.example"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "allowed referer passes when origin absent",
			env:        "production",
			method:     http.MethodPost,
			headers:    map[string]string{"Referer": "https://elitedetailing.com/booking?step=2"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "disallowed referer rejected",
			env:        "production",
			method:     http.MethodPost,
			headers:    map[string]string{"Referer": "https://evil.example/phish"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "referer ignored when origin present and bad",
			env:        "production",
			method:     http.MethodPost,
			headers:    map[string]string{"Origin": "https://evil.example", "Referer": "https://elitedetailing.com/"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "neither header rejected",
			env:        "production",
			method:     http.MethodPost,
			headers:    nil,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "development bypasses the check",
			env:        "development",
			method:     http.MethodPost,
			headers:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight is not guarded",
			env:        "production",
			method:     http.MethodOptions,
			headers:    nil,
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performOrigin(originRouter(tc.env), tc.method, tc.headers)
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "Forbidden: Invalid request origin")
			}
		})
	}
}
