// ABOUTME: Countdown is the between-sets rest timer.
// ABOUTME: Counts down one second per tick with 30/60/90 second presets.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultRest is the rest length a new or reset countdown holds.
const DefaultRest = 60 * time.Second

// Presets are the quick-pick rest lengths.
var Presets = []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}

// Countdown holds a remaining duration that Run drains in whole seconds.
type Countdown struct {
	mu        sync.Mutex
	remaining time.Duration
	cancel    context.CancelFunc
	runID     int

	interval time.Duration // wall time per tick; one second outside tests
}

// NewCountdown returns a stopped countdown loaded with DefaultRest.
func NewCountdown() *Countdown {
	return &Countdown{remaining: DefaultRest, interval: time.Second}
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether Run is in progress.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Set stops any run in progress and loads d, truncated to whole seconds.
func (c *Countdown) Set(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	if d < 0 {
		d = 0
	}
	c.remaining = d.Truncate(time.Second)
}

// Reset stops any run in progress and reloads DefaultRest.
func (c *Countdown) Reset() {
	c.Set(DefaultRest)
}

// Stop halts a run in progress, keeping the remaining time.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Run counts down until the remaining time reaches zero, calling tick after
// each second with the new remaining time. It returns nil when the countdown
// finishes and the context error if ctx is cancelled or Stop/Set/Reset is
// called first. Running an already running countdown is an error.
func (c *Countdown) Run(ctx context.Context, tick func(remaining time.Duration)) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return fmt.Errorf("countdown already running")
	}
	if c.remaining <= 0 {
		c.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.runID++
	id := c.runID
	interval := c.interval
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		// Set may already have cleared this run, and a new Run may own cancel.
		if c.runID == id && c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			return ctx.Err()
		}
		c.remaining -= time.Second
		if c.remaining < 0 {
			c.remaining = 0
		}
		left := c.remaining
		c.mu.Unlock()

		if tick != nil {
			tick(left)
		}
		if left == 0 {
			return nil
		}
	}
}

// FormatRemaining renders d as MM:SS.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
