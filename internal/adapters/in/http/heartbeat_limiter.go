package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// heartbeatLimiter throttles heartbeats per robot so a misbehaving unit in a
// tight loop cannot monopolize the endpoint. Limits are per robot name; an
// over-limit heartbeat is dropped with 429 and the robot retries on its
// normal cadence.
type heartbeatLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newHeartbeatLimiter(limit rate.Limit, burst int) *heartbeatLimiter {
	return &heartbeatLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// allow reports whether one heartbeat from the named robot may pass.
func (l *heartbeatLimiter) allow(robotName string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[robotName]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[robotName] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
