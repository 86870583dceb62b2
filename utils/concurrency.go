package utils

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cooldowns rate limits commands per (user, command). Each pair gets a one-token bucket that
// refills after the command's cooldown.
type Cooldowns struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewCooldowns() *Cooldowns {
	return &Cooldowns{limiters: make(map[string]*rate.Limiter), now: time.Now}
}

// Allow consumes the user's token for command. When the user is still cooling down it returns
// false and how long to wait.
func (c *Cooldowns) Allow(userID, command string, cooldown time.Duration) (bool, time.Duration) {
	if cooldown <= 0 {
		return true, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := userID + ":" + command
	lim, ok := c.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(cooldown), 1)
		c.limiters[key] = lim
	}
	now := c.now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Prune drops limiters that have refilled, keeping the map bounded.
func (c *Cooldowns) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, lim := range c.limiters {
		if lim.TokensAt(now) >= 1 {
			delete(c.limiters, k)
		}
	}
}
