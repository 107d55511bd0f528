package golingo

import (
	"context"
	"sync"
	"time"

	"github.com/ZaguanLabs/golingo/payload"
)

// RateLimitConfig configures chunk request throttling.
type RateLimitConfig struct {
	RequestsPerMinute int // Sustained rate (default: 60)
	BurstSize         int // Requests allowed back to back (default: RequestsPerMinute)
}

// RateLimiter is a token bucket shared by every chunk request of an Engine.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	level    float64
	last     time.Time
	now      func() time.Time
}

// NewRateLimiter creates a full bucket for cfg.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	l := &RateLimiter{
		capacity: float64(burst),
		perSec:   float64(rpm) / 60,
		level:    float64(burst),
		now:      time.Now,
	}
	l.last = l.now()
	return l
}

// Wait takes one token, sleeping until one is available. It fails with a
// CancelledError when ctx ends first.
func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		delay := l.reserve()
		if delay == 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &CancelledError{Cause: ctx.Err()}
		case <-timer.C:
		}
	}
}

// TryAcquire takes one token if available without blocking.
func (l *RateLimiter) TryAcquire() bool {
	return l.reserve() == 0
}

// Available returns the current number of tokens.
func (l *RateLimiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advance()
	return l.level
}

// reserve takes a token and returns zero, or returns how long until the
// next token accrues.
func (l *RateLimiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance()
	if l.level >= 1 {
		l.level--
		return 0
	}

	missing := 1 - l.level
	delay := time.Duration(missing / l.perSec * float64(time.Second))
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// advance credits tokens accrued since the last call. Callers hold mu.
func (l *RateLimiter) advance() {
	t := l.now()
	l.level += t.Sub(l.last).Seconds() * l.perSec
	if l.level > l.capacity {
		l.level = l.capacity
	}
	l.last = t
}

// RateLimitedTranslator throttles chunk requests through a RateLimiter.
type RateLimitedTranslator struct {
	next    ChunkTranslator
	limiter *RateLimiter
}

// NewRateLimitedTranslator wraps next with a limiter built from cfg.
func NewRateLimitedTranslator(next ChunkTranslator, cfg RateLimitConfig) *RateLimitedTranslator {
	return &RateLimitedTranslator{
		next:    next,
		limiter: NewRateLimiter(cfg),
	}
}

// TranslateChunk waits for a token, then forwards the request.
func (t *RateLimitedTranslator) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.next.TranslateChunk(ctx, req)
}

// Limiter returns the underlying limiter.
func (t *RateLimitedTranslator) Limiter() *RateLimiter {
	return t.limiter
}

var _ ChunkTranslator = (*RateLimitedTranslator)(nil)
