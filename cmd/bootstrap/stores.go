package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"detailing-api/internal/idempotency"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/config"
	"detailing-api/internal/ratelimit"
)

// StoresModule wires the rate limiter and idempotency store. With REDIS_ADDR
// set both are backed by the shared cache so their invariants hold across
// instances; otherwise they fall back to process-local maps, which is only
// correct for single-instance deployments.
var StoresModule = fx.Module("stores",
	fx.Provide(
		clock.NewRealClock,
		newRedisClient,
		newRateLimiter,
		newIdempotencyStore,
	),
)

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func rateLimitRules(cfg config.RateLimitConfig) map[ratelimit.Class]ratelimit.Rule {
	return map[ratelimit.Class]ratelimit.Rule{
		ratelimit.ClassBooking: {Max: cfg.BookingMax, Window: cfg.BookingWindow},
		ratelimit.ClassContact: {Max: cfg.ContactMax, Window: cfg.ContactWindow},
		ratelimit.ClassEmail:   {Max: cfg.EmailMax, Window: cfg.EmailWindow},
	}
}

func newRateLimiter(cfg config.Config, rdb *redis.Client, clk clock.Clock) ratelimit.Limiter {
	rules := rateLimitRules(cfg.RateLimit)
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, rules, clk)
	}
	return ratelimit.NewMemoryLimiter(rules, clk)
}

func newIdempotencyStore(cfg config.Config, rdb *redis.Client, clk clock.Clock) idempotency.Store {
	if rdb != nil {
		return idempotency.NewRedisStore(rdb, cfg.RateLimit.IdempotencyTTL)
	}
	return idempotency.NewMemoryStore(cfg.RateLimit.IdempotencyTTL, clk)
}
