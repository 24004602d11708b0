package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptsLimit  = 5
	loginAttemptsWindow = 15 * time.Minute
)

// attemptLimiter counts failures per key inside a sliding window.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{attempts: make(map[string][]time.Time)}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.recentLocked(key, now, window)) >= limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	limiter.attempts[key] = append(limiter.recentLocked(key, now, window), now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

// recentLocked drops attempts older than window and returns the rest.
func (limiter *attemptLimiter) recentLocked(key string, now time.Time, window time.Duration) []time.Time {
	threshold := now.Add(-window)
	recent := limiter.attempts[key][:0]
	for _, attempt := range limiter.attempts[key] {
		if attempt.After(threshold) {
			recent = append(recent, attempt)
		}
	}
	if len(recent) == 0 {
		delete(limiter.attempts, key)
		return nil
	}
	limiter.attempts[key] = recent
	return recent
}

func requestLimiterKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.IP()); key != "" {
		return key
	}
	return "unknown"
}
