package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultDuration is the time allowed for one quiz, in seconds.
	DefaultDuration = 30 * 60
	// LowTimeThreshold flags the final minute.
	LowTimeThreshold = 60
)

// Countdown ticks down once per interval and calls onExpire exactly once at zero.
type Countdown struct {
	interval time.Duration
	onExpire func()

	mu        sync.Mutex
	remaining int
	expired   bool
}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithInterval overrides the one second tick, for tests.
func WithInterval(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// NewCountdown starts at seconds. onExpire may be nil.
func NewCountdown(seconds int, onExpire func(), opts ...CountdownOption) *Countdown {
	c := &Countdown{
		interval:  time.Second,
		onExpire:  onExpire,
		remaining: seconds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tick decrements by one and fires onExpire the first time the clock is at or below zero.
func (c *Countdown) Tick() int {
	c.mu.Lock()
	if c.expired {
		remaining := c.remaining
		c.mu.Unlock()
		return remaining
	}
	if c.remaining > 0 {
		c.remaining--
	}
	remaining := c.remaining
	fire := remaining <= 0
	if fire {
		c.expired = true
	}
	c.mu.Unlock()

	// onExpire runs outside the lock so it may read the countdown.
	if fire && c.onExpire != nil {
		c.onExpire()
	}
	return remaining
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether onExpire has been triggered.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// LowTime reports whether the final minute has been reached.
func (c *Countdown) LowTime() bool {
	return c.Remaining() <= LowTimeThreshold
}

// Display formats the remaining time as MM:SS.
func (c *Countdown) Display() string {
	return FormatClock(c.Remaining())
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Run ticks until the countdown expires or ctx is cancelled. onTick, if set,
// receives the remaining seconds after every tick. The ticker is always released.
func (c *Countdown) Run(ctx context.Context, onTick func(remaining int)) {
	if c.Remaining() <= 0 {
		c.Tick()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			remaining := c.Tick()
			if onTick != nil {
				onTick(remaining)
			}
			if c.Expired() {
				return
			}
		}
	}
}
