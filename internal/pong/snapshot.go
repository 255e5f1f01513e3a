package pong

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is the hashable part of a frame. Floats are kept as raw bits so
// two runs only match when they are bit-identical. LastFrame is excluded:
// it is wall-clock time and differs between otherwise identical runs.
type Snapshot struct {
	Tick    uint64
	BallX   uint64
	BallY   uint64
	Angle   int64
	PaddleX uint64
	Status  int64
	Score   int64
}

// Snapshot returns the frame's hashable state.
func (f Frame) Snapshot() Snapshot {
	return Snapshot{
		Tick:    f.Tick,
		BallX:   math.Float64bits(f.Ball.X),
		BallY:   math.Float64bits(f.Ball.Y),
		Angle:   int64(f.Ball.Angle),
		PaddleX: math.Float64bits(f.PaddleX),
		Status:  int64(f.Status),
		Score:   int64(f.Score),
	}
}

// Hash returns an FNV-1a digest of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range []uint64{
		s.Tick,
		s.BallX,
		s.BallY,
		uint64(s.Angle),
		s.PaddleX,
		uint64(s.Status),
		uint64(s.Score),
	} {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash.Write never fails
	}
	return h.Sum64()
}

// Hash is shorthand for f.Snapshot().Hash().
func (f Frame) Hash() uint64 {
	return f.Snapshot().Hash()
}
