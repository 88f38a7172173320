package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"detailing-api/internal/pkg/errs"
)

// redisStore keeps idempotency records in a shared Redis instance so the
// at-most-once guarantee holds across concurrently running instances. The
// claim is a SET NX, which is the atomic check-and-set a process-local map
// cannot provide across processes.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) key(k string) string {
	return "idempotency:" + k
}

func (s *redisStore) Begin(ctx context.Context, key string) (*Response, error) {
	claimed, err := s.rdb.SetNX(ctx, s.key(key), statusProcessing, s.ttl).Result()
	if err != nil {
		return nil, errs.Wrap(err, "failed to claim idempotency key")
	}
	if claimed {
		return nil, nil
	}

	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Claim raced with an expiry; treat as in flight and let the
			// client retry.
			return nil, ErrInFlight
		}
		return nil, errs.Wrap(err, "failed to read idempotency record")
	}
	if val == statusProcessing {
		return nil, ErrInFlight
	}

	var resp Response
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, errs.Wrap(err, "corrupt idempotency record")
	}
	return &resp, nil
}

func (s *redisStore) Complete(ctx context.Context, key string, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return errs.Wrap(err, "failed to encode idempotency record")
	}
	if err := s.rdb.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to store idempotency record")
	}
	return nil
}

func (s *redisStore) Abandon(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return errs.Wrap(err, "failed to release idempotency key")
	}
	return nil
}
