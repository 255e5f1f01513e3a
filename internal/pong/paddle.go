package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// MovePaddle moves the paddle's left edge by speed*dt per held direction,
// left first then right, and clamps the result into [minX, maxX].
// Holding both directions cancels out.
func MovePaddle(x float64, in Input, speed int, dt, minX, maxX float64) float64 {
	step := float64(speed) * dt
	dx := 0.0
	if in.MoveLeft {
		dx -= step
	}
	if in.MoveRight {
		dx += step
	}
	return core.ClampF(x+dx, minX, maxX)
}
