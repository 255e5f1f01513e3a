package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Ball is the ball's top-left corner and heading.
// Angle is in whole degrees, 0 points along +x and 90 points down.
type Ball struct {
	X, Y  float64
	Angle int
}

// NormalizeAngle maps any integer angle into [0, 360).
func NormalizeAngle(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	return angle
}

// ReflectVertical mirrors the heading off a vertical surface (left/right wall).
func ReflectVertical(angle int) int {
	return NormalizeAngle(180 - angle)
}

// ReflectHorizontal mirrors the heading off a horizontal surface (top wall, paddle).
func ReflectHorizontal(angle int) int {
	return NormalizeAngle(360 - angle)
}

// Radians converts whole degrees to radians.
func Radians(angle int) float64 {
	return float64(angle) * math.Pi / 180
}

// Advance returns the candidate position after moving at speed units per
// second for dt seconds. Collision resolution decides the final position.
func (b Ball) Advance(speed int, dt float64) Ball {
	dist := float64(speed) * dt
	theta := Radians(b.Angle)
	return Ball{
		X:     b.X + dist*math.Cos(theta),
		Y:     b.Y + dist*math.Sin(theta),
		Angle: b.Angle,
	}
}

// MovingDown reports whether the heading has a downward component.
// Decided on the integer angle so 0 and 180 are never "down".
func (b Ball) MovingDown() bool {
	a := NormalizeAngle(b.Angle)
	return a > 0 && a < 180
}

// Rect returns the area the ball covers.
func (b Ball) Rect(size float64) core.RectF {
	return core.NewRectF(b.X, b.Y, size, size)
}
