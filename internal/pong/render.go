package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	PaddleChar = '█'
)

// Minimum screen that can show the field border plus one interior cell.
const (
	minScreenW = 3
	minScreenH = 4
)

// Layout selects where a text block is placed on the screen.
type Layout int

const (
	LayoutTop Layout = iota
	LayoutCenter
)

// layoutAnchors holds each layout's vertical anchor as a fraction of the
// free rows. Text blocks are always centered horizontally.
var layoutAnchors = [...]float64{
	LayoutTop:    0,
	LayoutCenter: 0.5,
}

// origin returns the top-left cell for a w×h block on a screenW×screenH screen.
func (l Layout) origin(screenW, screenH, w, h int) (int, int) {
	anchor := layoutAnchors[LayoutTop]
	if int(l) >= 0 && int(l) < len(layoutAnchors) {
		anchor = layoutAnchors[l]
	}
	x := (screenW - w) / 2
	y := int(anchor * float64(screenH-h))
	return max(x, 0), max(y, 0)
}

// viewport maps world units onto the cells inside the field border.
type viewport struct {
	left, top     int // First interior cell
	width, height int // Interior size in cells
	pad, fw, fh   float64
}

func (v viewport) cellX(x float64) int {
	c := v.left + int(math.Floor((x-v.pad)/v.fw*float64(v.width)))
	return core.Clamp(c, v.left, v.left+v.width-1)
}

func (v viewport) cellY(y float64) int {
	c := v.top + int(math.Floor((y-v.pad)/v.fh*float64(v.height)))
	return core.Clamp(c, v.top, v.top+v.height-1)
}

// rect converts a world rectangle to cells, at least one cell in each
// direction and never outside the interior.
func (v viewport) rect(r core.RectF) core.Rect {
	x, y := v.cellX(r.X), v.cellY(r.Y)
	w := max(1, int(math.Round(r.W/v.fw*float64(v.width))))
	h := max(1, int(math.Round(r.H/v.fh*float64(v.height))))
	w = min(w, v.left+v.width-x)
	h = min(h, v.top+v.height-y)
	return core.NewRect(x, y, w, h)
}

// Render draws f into dst. Row 0 is the score line; the rest of the screen
// holds the bordered playfield.
func (s *Simulator) Render(f Frame, dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		drawBlock(dst, LayoutCenter, core.ColorRed, false, "too small")
		return
	}

	border := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	dst.DrawBox(border, core.ColorGray)

	v := viewport{
		left:   border.X + 1,
		top:    border.Y + 1,
		width:  border.W - 2,
		height: border.H - 2,
		pad:    float64(s.cfg.Window.Padding),
		fw:     float64(s.cfg.FieldWidth()),
		fh:     float64(s.cfg.FieldHeight()),
	}

	dst.DrawRect(v.rect(s.bounds.PaddleRect(f.PaddleX)), PaddleChar, core.ColorCyan)

	ballColor := core.ColorBrightWhite
	if f.Status == StatusLost {
		ballColor = core.ColorRed
	}
	dst.DrawRect(v.rect(f.Ball.Rect(s.bounds.BallSize)), BallChar, ballColor)

	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", f.Score), core.ColorYellow)
	drawBlock(dst, LayoutTop, core.ColorBrightWhite, false, "PONG")

	if f.Status == StatusLost {
		drawBlock(dst, LayoutCenter, core.ColorBrightRed, true,
			"GAME OVER",
			fmt.Sprintf("Final score: %d", f.Score),
		)
	}
}

// drawBlock writes lines as a block placed by layout, optionally framed.
func drawBlock(dst *core.Screen, layout Layout, c core.Color, boxed bool, lines ...string) {
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	h := len(lines)
	inset := 0
	if boxed {
		inset = 2
		w += 2 * inset
		h += 2
	}

	x, y := layout.origin(dst.Width(), dst.Height(), w, h)
	if boxed {
		box := core.NewRect(x, y, w, h)
		dst.DrawRect(box, ' ', core.ColorDefault)
		dst.DrawBox(box, c)
		y++
	}
	for i, line := range lines {
		lx := x + inset + (w-2*inset-len([]rune(line)))/2
		dst.DrawTextColored(lx, y+i, line, c)
	}
}
