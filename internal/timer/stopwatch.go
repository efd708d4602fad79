// ABOUTME: Stopwatch tracks elapsed workout time across pauses.
// ABOUTME: The clock is injectable so tests don't sleep.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// Stopwatch accumulates elapsed time while running. The zero value is not
// usable; call NewStopwatch.
type Stopwatch struct {
	now func() time.Time

	mu      sync.Mutex
	running bool
	started time.Time     // start of the current run
	banked  time.Duration // elapsed before the current run
}

// NewStopwatch returns a stopped stopwatch. A nil now uses time.Now.
func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start begins or resumes timing. Starting a running stopwatch does nothing.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.started = s.now()
}

// Pause stops timing and keeps the elapsed total.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.banked += s.now().Sub(s.started)
	s.running = false
}

// Reset stops the stopwatch and zeroes it.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.banked = 0
}

// Elapsed returns the total timed duration including the current run.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.banked + s.now().Sub(s.started)
	}
	return s.banked
}

// Running reports whether the stopwatch is timing.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// FormatElapsed renders d as MM:SS.cc, or H:MM:SS.cc from one hour up.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	centis := int((d % time.Second) / (10 * time.Millisecond))

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
