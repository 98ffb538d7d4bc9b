package users

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// signInLimiter throttles sign-in attempts per email with a token bucket.
// Entries idle for longer than entryTTL are dropped by a background sweep.
type signInLimiter struct {
	perMinute int
	burst     int

	mu       sync.Mutex
	limiters map[string]*emailLimiter
}

type emailLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const limiterEntryTTL = 15 * time.Minute

func newSignInLimiter(perMinute, burst int) *signInLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &signInLimiter{
		perMinute: perMinute,
		burst:     burst,
		limiters:  make(map[string]*emailLimiter),
	}
}

// Allow reports whether another attempt for the given email may proceed.
func (l *signInLimiter) Allow(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[email]
	if !ok {
		e = &emailLimiter{limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.burst)}
		l.limiters[email] = e
	}
	e.lastAccess = time.Now()

	return e.limiter.Allow()
}

// StartCleanup sweeps idle entries until ctx is cancelled.
func (l *signInLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-limiterEntryTTL)
			l.mu.Lock()
			for email, e := range l.limiters {
				if e.lastAccess.Before(cutoff) {
					delete(l.limiters, email)
				}
			}
			l.mu.Unlock()
		}
	}
}
