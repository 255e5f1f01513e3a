// Package tui hosts the Pong simulation in a Bubble Tea program.
// It samples keys, drives one simulation step per frame, records the
// session for replay, and renders frames to the terminal.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

// FrameMsg carries the result of one simulation step.
type FrameMsg struct {
	Game  int // Session generation that requested the step
	Input pong.Input
	Frame pong.Frame
}

// stepCmd runs one paced step off the update loop.
// The pacer's wait happens inside the command, bounded by one frame period.
func stepCmd(sim *pong.Simulator, game int, prev pong.Frame, in pong.Input) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg{
			Game:  game,
			Input: in,
			Frame: sim.Step(prev, in),
		}
	}
}
