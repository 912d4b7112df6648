package api

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

// loginThrottle blocks a client and email pair after limit failed sign-ins
// within window. A successful sign-in clears the pair.
type loginThrottle struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// retryAfter reports how long key stays blocked. Zero means the attempt may
// proceed.
func (throttle *loginThrottle) retryAfter(key string, now time.Time) time.Duration {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	recent := throttle.recentLocked(key, now)
	if len(recent) < throttle.limit {
		return 0
	}
	// the pair unblocks once enough of the oldest failures leave the window
	release := recent[len(recent)-throttle.limit].Add(throttle.window)
	return release.Sub(now)
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	throttle.failures[key] = append(throttle.recentLocked(key, now), now)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

func (throttle *loginThrottle) recentLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-throttle.window)
	kept := throttle.failures[key][:0]
	for _, failedAt := range throttle.failures[key] {
		if failedAt.After(cutoff) {
			kept = append(kept, failedAt)
		}
	}
	if len(kept) == 0 {
		delete(throttle.failures, key)
		return nil
	}
	throttle.failures[key] = kept
	return kept
}

// loginThrottleKey scopes failures to the client address and the attempted email.
func loginThrottleKey(c *fiber.Ctx, email string) string {
	ip := strings.TrimSpace(c.IP())
	if ip == "" {
		ip = "unknown"
	}
	return ip + "|" + strings.ToLower(strings.TrimSpace(email))
}

func retryAfterSeconds(wait time.Duration) int {
	return int(math.Ceil(wait.Seconds()))
}
