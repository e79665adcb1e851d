package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	rl := newIPRateLimiter(1, 2)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "лимит считается отдельно для каждого IP")

	now = now.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"))

	now = now.Add(5 * time.Minute)
	assert.True(t, rl.allow("10.0.0.3"))
	assert.Equal(t, 1, rl.size())
}
