// Package replay records the per-frame inputs of a Pong session and
// re-runs stored traces to check that the simulation reproduces them.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// ErrEmptyTrace is returned when there is nothing to save.
var ErrEmptyTrace = errors.New("replay: no frames recorded")

// Recorder collects the delta and move intents of every simulated frame.
type Recorder struct {
	frames []storage.ReplayFrame
	last   pong.Frame
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the input that produced f.
// Frames after the game is lost are ignored so the trace ends at the loss.
func (r *Recorder) Record(in pong.Input, f pong.Frame) {
	if len(r.frames) > 0 && r.last.Status == pong.StatusLost {
		return
	}
	r.frames = append(r.frames, storage.ReplayFrame{
		Delta:     f.Delta,
		MoveLeft:  in.MoveLeft,
		MoveRight: in.MoveRight,
	})
	r.last = f
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Last returns the most recently recorded frame.
func (r *Recorder) Last() pong.Frame {
	return r.last
}

// Frames returns a copy of the recorded trace.
func (r *Recorder) Frames() []storage.ReplayFrame {
	out := make([]storage.ReplayFrame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Build packages the trace with cfg into a storable replay.
func (r *Recorder) Build(cfg config.Config) (storage.Replay, error) {
	if len(r.frames) == 0 {
		return storage.Replay{}, ErrEmptyTrace
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return storage.Replay{}, fmt.Errorf("replay: %w", err)
	}
	return storage.Replay{
		Config:      data,
		Frames:      r.Frames(),
		FinalStatus: r.last.Status.String(),
		FinalHash:   r.last.Hash(),
	}, nil
}

// Run advances sim from its initial frame through the recorded deltas.
func Run(sim *pong.Simulator, frames []storage.ReplayFrame) pong.Frame {
	f := sim.Initial()
	for _, rf := range frames {
		f = sim.Advance(f, pong.Input{MoveLeft: rf.MoveLeft, MoveRight: rf.MoveRight}, rf.Delta)
	}
	return f
}

// Result is the outcome of re-running a stored replay.
type Result struct {
	ID       string
	Frames   int
	Final    pong.Frame
	Expected uint64
	Actual   uint64
}

// OK reports whether the re-run reproduced the stored final frame.
func (r Result) OK() bool {
	return r.Expected == r.Actual
}

// Verify rebuilds the simulator from the replay's stored config and
// compares the re-run final hash against the recorded one.
func Verify(rep *storage.Replay) (Result, error) {
	cfg, err := config.Parse(rep.Config)
	if err != nil {
		return Result{}, fmt.Errorf("replay %s: %w", rep.ID, err)
	}
	sim, err := pong.New(cfg, nil)
	if err != nil {
		return Result{}, fmt.Errorf("replay %s: %w", rep.ID, err)
	}

	final := Run(sim, rep.Frames)
	return Result{
		ID:       rep.ID,
		Frames:   len(rep.Frames),
		Final:    final,
		Expected: rep.FinalHash,
		Actual:   final.Hash(),
	}, nil
}
