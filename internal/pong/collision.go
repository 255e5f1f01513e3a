package pong

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Bounds are the limits derived from a validated config.
// Ball limits apply to the ball's top-left corner, already inset by its size.
type Bounds struct {
	MinX, MaxX float64 // Ball horizontal range
	MinY, MaxY float64 // Ball vertical range; MaxY is the bottom wall

	PaddleMinX, PaddleMaxX float64 // Paddle left-edge range
	PaddleY                float64 // Paddle top edge

	BallSize     float64
	PaddleWidth  float64
	PaddleHeight float64
}

// NewBounds derives the playfield limits from cfg.
func NewBounds(cfg config.Config) Bounds {
	pad := float64(cfg.Window.Padding)
	right := float64(cfg.Window.Width) - pad
	bottom := float64(cfg.Window.Height) - pad
	size := float64(cfg.Ball.Size)
	pw := float64(cfg.Paddle.Width)
	ph := float64(cfg.Paddle.Height)

	return Bounds{
		MinX:         pad,
		MaxX:         right - size,
		MinY:         pad,
		MaxY:         bottom - size,
		PaddleMinX:   pad,
		PaddleMaxX:   right - pw,
		PaddleY:      bottom - float64(cfg.Paddle.Offset) - ph,
		BallSize:     size,
		PaddleWidth:  pw,
		PaddleHeight: ph,
	}
}

// PaddleRect returns the area the paddle covers at x.
func (b Bounds) PaddleRect(x float64) core.RectF {
	return core.NewRectF(x, b.PaddleY, b.PaddleWidth, b.PaddleHeight)
}

// Resolution is the outcome of one collision pass.
type Resolution struct {
	Ball   Ball
	Status Status
	Scored bool
}

// Resolve checks the candidate position against the paddle and walls and
// returns the final ball for this frame. Checks run once, in order:
//
//  1. paddle: the ball is heading down, was not already below the paddle,
//     its bottom edge has reached the paddle line, and it overlaps the
//     paddle horizontally
//  2. bottom wall without paddle contact: the game is lost
//  3. left/right wall: vertical reflection
//  4. top wall: horizontal reflection
//
// Every contact replaces the candidate coordinate with the exact bound.
// Side and top checks both apply, so a corner hit reflects twice.
func Resolve(prev, candidate Ball, paddleX float64, b Bounds) Resolution {
	next := candidate
	res := Resolution{Status: StatusRunning}

	candBottom := candidate.Y + b.BallSize
	reachesPaddle := prev.MovingDown() && prev.Y < b.PaddleY+b.PaddleHeight && candBottom >= b.PaddleY

	switch {
	case reachesPaddle && candidate.Rect(b.BallSize).OverlapsX(b.PaddleRect(paddleX)):
		next.Y = b.PaddleY - b.BallSize
		next.Angle = ReflectHorizontal(next.Angle)
		res.Scored = true
	case candidate.Y >= b.MaxY:
		next.Y = b.MaxY
		next.X = core.ClampF(next.X, b.MinX, b.MaxX)
		res.Ball = next
		res.Status = StatusLost
		return res
	}

	if next.X < b.MinX {
		next.X = b.MinX
		next.Angle = ReflectVertical(next.Angle)
	} else if next.X > b.MaxX {
		next.X = b.MaxX
		next.Angle = ReflectVertical(next.Angle)
	}

	if next.Y < b.MinY {
		next.Y = b.MinY
		next.Angle = ReflectHorizontal(next.Angle)
	}

	res.Ball = next
	return res
}
