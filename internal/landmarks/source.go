// Package landmarks delivers hand landmark frames from an external tracker:
// recorded JSON-lines streams, a scripted demo sequence, and a Feed that
// paces either against the session clock.
package landmarks

import (
	"context"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
)

// Frame is one tracker result: zero to two hands observed at At, measured
// from the start of the stream.
type Frame struct {
	At    time.Duration
	Hands [][]geom.Point3D
}

// Observations returns the hands as gesture observations. The slices are
// shared with the frame.
func (f Frame) Observations() []gesture.HandObservation {
	out := make([]gesture.HandObservation, len(f.Hands))
	for i, h := range f.Hands {
		out[i] = gesture.HandObservation(h)
	}
	return out
}

// Source yields frames in timestamp order and io.EOF at the end.
type Source interface {
	Next(ctx context.Context) (Frame, error)
	Close() error
}

// Opener creates a fresh Source positioned at the first frame.
type Opener func() (Source, error)
