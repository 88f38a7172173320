package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream creds)
// - default: Values common across all environments (windows, limits, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Supabase  SupabaseConfig
	Database  DatabaseConfig
	Email     EmailConfig
	Redis     RedisConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// development relaxes the origin guard and allows requests without an
	// Origin/Referer header.
	Environment string `envconfig:"APP_ENV" default:"production"`
}

func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

type SecurityConfig struct {
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"https://elitedetailing.com,http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"`
	CORSMaxAge     time.Duration `envconfig:"CORS_MAX_AGE" default:"24h"`
}

type RateLimitConfig struct {
	BookingMax     int           `envconfig:"RATE_LIMIT_BOOKING_MAX" default:"10"`
	BookingWindow  time.Duration `envconfig:"RATE_LIMIT_BOOKING_WINDOW" default:"1h"`
	ContactMax     int           `envconfig:"RATE_LIMIT_CONTACT_MAX" default:"5"`
	ContactWindow  time.Duration `envconfig:"RATE_LIMIT_CONTACT_WINDOW" default:"1h"`
	EmailMax       int           `envconfig:"RATE_LIMIT_EMAIL_MAX" default:"3"`
	EmailWindow    time.Duration `envconfig:"RATE_LIMIT_EMAIL_WINDOW" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// Supabase is the hosted system of record; the service-role key never reaches
// the browser, which is the whole point of this API existing.
type SupabaseConfig struct {
	URL            string        `envconfig:"SUPABASE_URL" default:""`
	ServiceRoleKey string        `envconfig:"SUPABASE_SERVICE_ROLE_KEY" default:""`
	Timeout        time.Duration `envconfig:"SUPABASE_TIMEOUT" default:"10s"`
}

func (c SupabaseConfig) Configured() bool {
	return c.URL != "" && c.ServiceRoleKey != ""
}

// Database selects the self-hosted Postgres store instead of the hosted
// PostgREST service when a DSN is set.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" default:""`
}

type EmailConfig struct {
	ResendAPIKey string        `envconfig:"RESEND_API_KEY" default:""`
	From         string        `envconfig:"EMAIL_FROM" default:"Elite Detailing <onboarding@resend.dev>"`
	Timeout      time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`
}

func (c EmailConfig) Configured() bool {
	return c.ResendAPIKey != ""
}

// Redis is optional: when Addr is empty the rate limiter and idempotency store
// run on process-local maps, which is only correct for single-instance
// deployments.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:        "8889", // Test port
			Environment: "production",
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"https://elitedetailing.com", "http://localhost:5173"},
			CORSMaxAge:     24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			BookingMax:     10,
			BookingWindow:  time.Hour,
			ContactMax:     5,
			ContactWindow:  time.Hour,
			EmailMax:       3,
			EmailWindow:    5 * time.Minute,
			IdempotencyTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}
