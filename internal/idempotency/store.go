// Package idempotency gives retried submissions at-most-once semantics: the
// first request bearing a key executes and records its response, every later
// request within the TTL replays that response byte for byte.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"detailing-api/internal/pkg/clock"
)

// ErrInFlight reports that another request holding the same key is still
// executing. Claiming is atomic, so two concurrent requests with an unseen
// key can never both run the side-effecting insert.
var ErrInFlight = errors.New("request with this idempotency key is already in progress")

// Response is the cached outcome replayed to duplicate requests.
type Response struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type Store interface {
	// Begin looks up key and atomically claims it when unseen. It returns
	// the cached response for a completed key, (nil, nil) when the claim
	// succeeded and the caller should execute, or ErrInFlight.
	Begin(ctx context.Context, key string) (*Response, error)
	// Complete records the response for a claimed key.
	Complete(ctx context.Context, key string, resp Response) error
	// Abandon releases a claim whose request failed before producing a
	// cacheable outcome, so the client's retry is not locked out.
	Abandon(ctx context.Context, key string) error
}

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"

	// sweepThreshold bounds memory: past this many records a full sweep of
	// expired entries runs on the next Begin.
	sweepThreshold = 1000
)

type record struct {
	status    string
	response  Response
	createdAt time.Time
}

// memoryStore is the process-local backend; single-instance deployments only.
type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clock.Clock
	records map[string]*record
}

func NewMemoryStore(ttl time.Duration, clk clock.Clock) Store {
	return &memoryStore{
		ttl:     ttl,
		clock:   clk,
		records: make(map[string]*record),
	}
}

func (s *memoryStore) Begin(_ context.Context, key string) (*Response, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) > sweepThreshold {
		s.sweep(now)
	}

	rec, ok := s.records[key]
	if ok && now.Sub(rec.createdAt) >= s.ttl {
		// Expired records are treated as absent.
		delete(s.records, key)
		ok = false
	}
	if !ok {
		s.records[key] = &record{status: statusProcessing, createdAt: now}
		return nil, nil
	}

	switch rec.status {
	case statusCompleted:
		resp := rec.response
		return &resp, nil
	default:
		return nil, ErrInFlight
	}
}

func (s *memoryStore) Complete(_ context.Context, key string, resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		rec = &record{createdAt: s.clock.Now()}
		s.records[key] = rec
	}
	rec.status = statusCompleted
	rec.response = resp
	return nil
}

func (s *memoryStore) Abandon(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[key]; ok && rec.status == statusProcessing {
		delete(s.records, key)
	}
	return nil
}

func (s *memoryStore) sweep(now time.Time) {
	for k, rec := range s.records {
		if now.Sub(rec.createdAt) >= s.ttl {
			delete(s.records, k)
		}
	}
}
