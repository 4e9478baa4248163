package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestHeartbeatLimiter_BurstThenThrottle(t *testing.T) {
	limiter := newHeartbeatLimiter(rate.Limit(1), 3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.allow("wash-bot-1"), "heartbeat %d within burst", i+1)
	}
	assert.False(t, limiter.allow("wash-bot-1"))
}

func TestHeartbeatLimiter_LimitsPerRobot(t *testing.T) {
	limiter := newHeartbeatLimiter(rate.Limit(1), 1)

	assert.True(t, limiter.allow("wash-bot-1"))
	assert.False(t, limiter.allow("wash-bot-1"))

	// One noisy robot must not starve the others.
	assert.True(t, limiter.allow("wash-bot-2"))
}
