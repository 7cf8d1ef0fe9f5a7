// Package ratelimit throttles command usage per user with a token bucket.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter grants each user a bucket of commandsPerMinute tokens refilled
// smoothly over time. A zero limit disables throttling entirely.
type Limiter struct {
	commandsPerMinute int
	buckets           sync.Map // map[string]*bucket
}

func NewLimiter(commandsPerMinute int) *Limiter {
	return &Limiter{commandsPerMinute: commandsPerMinute}
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(maxTokens, refillRate float64) *bucket {
	return &bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (b *bucket) tryTake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.lastRefill = now

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether userID may run another command right now.
func (l *Limiter) Allow(userID string) bool {
	if l == nil || l.commandsPerMinute <= 0 {
		return true
	}

	max := float64(l.commandsPerMinute)
	actual, _ := l.buckets.LoadOrStore(userID, newBucket(max, max/60.0))
	return actual.(*bucket).tryTake()
}
