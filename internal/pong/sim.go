// Package pong implements the single-player Pong simulation: a ball bounces
// inside a padded playfield and the player defends the bottom edge with a
// horizontally moving paddle. Each deflection scores a point; a ball that
// reaches the bottom wall ends the game.
//
// Frames are immutable values. Step takes the previous frame and the
// current input and returns a new frame; nothing is mutated in place.
package pong

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-pong/internal/config"
)

// Status is the game's state machine position.
type Status int

const (
	StatusRunning Status = iota
	StatusLost           // Terminal
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Input is the per-frame intent record produced by the host.
// Quit is a host concern; the simulation reads only the move flags.
type Input struct {
	Quit      bool
	MoveLeft  bool
	MoveRight bool
}

// Frame is one simulation snapshot.
type Frame struct {
	Ball      Ball
	PaddleX   float64 // Paddle left edge
	Status    Status
	Score     int
	LastFrame time.Time // Zero until the first paced step
	Tick      uint64    // Steps taken since Initial
	Delta     float64   // Seconds consumed by the step that produced this frame
}

// Simulator advances frames for one configuration.
type Simulator struct {
	cfg    config.Config
	bounds Bounds
	pacer  *Pacer
}

// New validates cfg and creates a simulator paced by clock.
// A nil clock uses the system clock.
func New(cfg config.Config, clock Clock) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pong: %w", err)
	}
	pacer, err := NewPacer(clock, cfg.Timing.FPS)
	if err != nil {
		return nil, fmt.Errorf("pong: %w", err)
	}
	return &Simulator{
		cfg:    cfg,
		bounds: NewBounds(cfg),
		pacer:  pacer,
	}, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() config.Config {
	return s.cfg
}

// Bounds returns the derived playfield limits.
func (s *Simulator) Bounds() Bounds {
	return s.bounds
}

// Initial returns the starting frame: running, score 0, paddle centered,
// no previous timestamp.
func (s *Simulator) Initial() Frame {
	return Frame{
		Ball: Ball{
			X:     s.cfg.Ball.StartX,
			Y:     s.cfg.Ball.StartY,
			Angle: s.cfg.Ball.StartAngle,
		},
		PaddleX: (s.bounds.PaddleMinX + s.bounds.PaddleMaxX) / 2,
		Status:  StatusRunning,
	}
}

// Step paces the frame against prev.LastFrame and then advances it.
func (s *Simulator) Step(prev Frame, in Input) Frame {
	now, dt := s.pacer.Pace(prev.LastFrame)
	next := s.Advance(prev, in, dt)
	next.LastFrame = now
	return next
}

// Advance is the pure part of Step: it moves prev forward by dt seconds.
// dt is clamped to [0, MaxDelta].
// A lost frame passes through with its ball and paddle unchanged.
func (s *Simulator) Advance(prev Frame, in Input, dt float64) Frame {
	dt = s.ClampDelta(dt)

	next := prev
	next.Tick++
	next.Delta = dt

	if prev.Status == StatusLost {
		return next
	}

	candidate := prev.Ball.Advance(s.cfg.Ball.Speed, dt)
	res := Resolve(prev.Ball, candidate, prev.PaddleX, s.bounds)

	next.Ball = res.Ball
	next.Status = res.Status
	if res.Scored {
		next.Score++
	}
	next.PaddleX = MovePaddle(prev.PaddleX, in, s.cfg.Paddle.Speed, dt,
		s.bounds.PaddleMinX, s.bounds.PaddleMaxX)

	return next
}

// ClampDelta bounds a delta-time to [0, MaxDelta].
// NaN counts as 0 and +Inf as MaxDelta.
func (s *Simulator) ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return math.Min(dt, s.cfg.Timing.MaxDelta)
}
