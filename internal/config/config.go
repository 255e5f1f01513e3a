// Package config provides YAML-based configuration loading and validation
// for the Pong simulation.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxDeltaLimit is the largest accepted timing.max_delta, in seconds.
const MaxDeltaLimit = 1.0

// Config contains every constant the simulation consumes.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Ball   BallConfig   `yaml:"ball"`
	Paddle PaddleConfig `yaml:"paddle"`
	Timing TimingConfig `yaml:"timing"`
}

// WindowConfig defines the world size and the padding around the playfield.
type WindowConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Padding int `yaml:"padding"`
}

// BallConfig defines ball dimensions, speed, and starting state.
type BallConfig struct {
	Size       int     `yaml:"size"`
	Speed      int     `yaml:"speed"` // Units per second
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	StartAngle int     `yaml:"start_angle"` // Degrees in [0, 360)
}

// PaddleConfig defines paddle dimensions, placement, and speed.
type PaddleConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Offset int `yaml:"offset"` // Gap between paddle bottom and playfield bottom
	Speed  int `yaml:"speed"`  // Units per second
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	FPS      int     `yaml:"fps"`
	MaxDelta float64 `yaml:"max_delta"` // Upper bound for a single step, in seconds
}

// Default returns the built-in configuration.
// It mirrors defaults/pong.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:   800,
			Height:  600,
			Padding: 15,
		},
		Ball: BallConfig{
			Size:       15,
			Speed:      300,
			StartX:     20,
			StartY:     20,
			StartAngle: 45,
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 15,
			Offset: 20,
			Speed:  450,
		},
		Timing: TimingConfig{
			FPS:      60,
			MaxDelta: 0.25,
		},
	}
}

// FieldWidth returns the width of the padded playfield.
func (c Config) FieldWidth() int {
	return c.Window.Width - 2*c.Window.Padding
}

// FieldHeight returns the height of the padded playfield.
func (c Config) FieldHeight() int {
	return c.Window.Height - 2*c.Window.Padding
}

// Validate reports the first misconfiguration found.
// A config that passes always yields non-empty clamp ranges.
func (c Config) Validate() error {
	if c.Timing.FPS <= 0 {
		return invalid("timing.fps must be positive, got %d", c.Timing.FPS)
	}
	if !(c.Timing.MaxDelta > 0 && c.Timing.MaxDelta <= MaxDeltaLimit) {
		return invalid("timing.max_delta must be in (0, %v], got %v", MaxDeltaLimit, c.Timing.MaxDelta)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Padding < 0 {
		return invalid("window.padding must not be negative, got %d", c.Window.Padding)
	}
	if c.FieldWidth() <= 0 || c.FieldHeight() <= 0 {
		return invalid("padding %d leaves no playfield in a %dx%d window",
			c.Window.Padding, c.Window.Width, c.Window.Height)
	}
	if c.Ball.Size <= 0 {
		return invalid("ball.size must be positive, got %d", c.Ball.Size)
	}
	if c.Ball.Size >= c.FieldWidth() || c.Ball.Size >= c.FieldHeight() {
		return invalid("ball.size %d does not fit the %dx%d playfield",
			c.Ball.Size, c.FieldWidth(), c.FieldHeight())
	}
	if c.Ball.Speed <= 0 {
		return invalid("ball.speed must be positive, got %d", c.Ball.Speed)
	}
	if c.Ball.StartAngle < 0 || c.Ball.StartAngle >= 360 {
		return invalid("ball.start_angle must be in [0, 360), got %d", c.Ball.StartAngle)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		return invalid("paddle size must be positive, got %dx%d", c.Paddle.Width, c.Paddle.Height)
	}
	if c.Paddle.Width >= c.FieldWidth() {
		return invalid("paddle.width %d must be smaller than the playfield width %d",
			c.Paddle.Width, c.FieldWidth())
	}
	if c.Paddle.Offset < 0 {
		return invalid("paddle.offset must not be negative, got %d", c.Paddle.Offset)
	}
	if c.Paddle.Offset+c.Paddle.Height+c.Ball.Size > c.FieldHeight() {
		return invalid("paddle (offset %d, height %d) leaves no room for the ball above it",
			c.Paddle.Offset, c.Paddle.Height)
	}
	if c.Paddle.Speed <= 0 {
		return invalid("paddle.speed must be positive, got %d", c.Paddle.Speed)
	}

	minX, minY := float64(c.Window.Padding), float64(c.Window.Padding)
	maxX := float64(c.Window.Width - c.Window.Padding - c.Ball.Size)
	paddleTop := float64(c.Window.Height - c.Window.Padding - c.Paddle.Offset - c.Paddle.Height)
	maxStartY := paddleTop - float64(c.Ball.Size)
	if !(c.Ball.StartX >= minX && c.Ball.StartX <= maxX) {
		return invalid("ball.start_x %v outside [%v, %v]", c.Ball.StartX, minX, maxX)
	}
	if !(c.Ball.StartY >= minY && c.Ball.StartY <= maxStartY) {
		return invalid("ball.start_y %v outside [%v, %v]", c.Ball.StartY, minY, maxStartY)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
