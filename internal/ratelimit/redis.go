package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"detailing-api/internal/pkg/clock"
)

// redisLimiter backs the fixed-window counters with a shared Redis instance
// so the per-client limits hold across concurrently running instances. The
// window key embeds the window start, making INCR on a fresh window an atomic
// reset.
type redisLimiter struct {
	rdb   *redis.Client
	rules map[Class]Rule
	clock clock.Clock
}

func NewRedisLimiter(rdb *redis.Client, rules map[Class]Rule, clk clock.Clock) Limiter {
	return &redisLimiter{rdb: rdb, rules: rules, clock: clk}
}

func (l *redisLimiter) Allow(ctx context.Context, clientKey string, class Class) Decision {
	rule, ok := l.rules[class]
	if !ok || rule.Max <= 0 {
		return Decision{Allowed: true}
	}
	if clientKey == "" {
		clientKey = UnknownClient
	}

	now := l.clock.Now()
	windowStart := now.Truncate(rule.Window)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", class, clientKey, windowStart.Unix())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rule.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		// An unreachable counter store must not take the endpoints down with
		// it; fail open and let the upstream quota be the backstop.
		slog.Warn("rate limit counter unavailable, allowing request", "class", class, "error", err)
		return Decision{Allowed: true}
	}

	if incr.Val() > int64(rule.Max) {
		return Decision{
			Allowed:    false,
			RetryAfter: windowStart.Add(rule.Window).Sub(now),
		}
	}
	return Decision{Allowed: true}
}
