package pong

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pong/internal/config"
)

// Clock is the time source the pacer reads and waits on.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

// Now returns the current time with monotonic clock reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Pacer holds frames to a fixed target duration.
type Pacer struct {
	clock  Clock
	period time.Duration
}

// NewPacer creates a pacer targeting fps frames per second.
func NewPacer(clock Clock, fps int) (*Pacer, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", config.ErrInvalidConfig, fps)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{
		clock:  clock,
		period: time.Second / time.Duration(fps),
	}, nil
}

// Period returns the target frame duration.
func (p *Pacer) Period() time.Duration {
	return p.period
}

// Pace waits until at least one period has passed since last and returns
// the current time with the elapsed seconds.
//
// A zero last is the "no previous frame" sentinel: Pace returns at once
// with a delta of 0. The wait never exceeds one period, and a clock that
// reads earlier than last yields a delta of 0 instead of a negative one.
func (p *Pacer) Pace(last time.Time) (time.Time, float64) {
	if last.IsZero() {
		return p.clock.Now(), 0
	}

	elapsed := p.clock.Now().Sub(last)
	if wait := p.period - elapsed; wait > 0 && wait <= p.period {
		p.clock.Sleep(wait)
	}

	now := p.clock.Now()
	dt := now.Sub(last).Seconds()
	if dt < 0 {
		dt = 0
	}
	return now, dt
}
