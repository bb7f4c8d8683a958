package landmarks

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
)

// Scripted demo timeline.
const (
	scriptFPS      = 30
	scriptApart    = 1500 * time.Millisecond
	scriptApproach = 3000 * time.Millisecond
	scriptHold     = 7000 * time.Millisecond
	scriptSeparate = 8500 * time.Millisecond
	scriptOneHand  = 10000 * time.Millisecond

	apartGap = 0.5
	holdGap  = 0.04
	jitter   = 0.0015
)

// ScriptedSource synthesizes a repeatable two-hand performance: hands apart,
// moving together, holding still, separating, then a single hand.
type ScriptedSource struct {
	frame  int
	closed bool
}

// NewScriptedSource starts the script at t=0.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{}
}

// ScriptedOpener returns an Opener for the scripted demo.
func ScriptedOpener() Opener {
	return func() (Source, error) {
		return NewScriptedSource(), nil
	}
}

// ScriptLength is the duration of one scripted performance.
func ScriptLength() time.Duration {
	return scriptOneHand
}

// Next returns the next scripted frame.
func (s *ScriptedSource) Next(ctx context.Context) (Frame, error) {
	if s.closed {
		return Frame{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	at := time.Duration(s.frame) * time.Second / scriptFPS
	if at >= scriptOneHand {
		return Frame{}, io.EOF
	}
	s.frame++

	gap := scriptGap(at)
	shake := jitter * math.Sin(float64(s.frame)*1.7)
	left := scriptHand(0.5-gap/2+shake, 0.55, -1)
	right := scriptHand(0.5+gap/2-shake, 0.55, 1)

	if at >= scriptSeparate {
		return Frame{At: at, Hands: [][]geom.Point3D{right}}, nil
	}
	return Frame{At: at, Hands: [][]geom.Point3D{left, right}}, nil
}

// Close ends the script.
func (s *ScriptedSource) Close() error {
	s.closed = true
	return nil
}

// scriptGap is the wrist-to-wrist distance at time at.
func scriptGap(at time.Duration) float64 {
	switch {
	case at < scriptApart:
		return apartGap
	case at < scriptApproach:
		k := float64(at-scriptApart) / float64(scriptApproach-scriptApart)
		return apartGap + (holdGap-apartGap)*smoothstep(k)
	case at < scriptHold:
		return holdGap
	default:
		k := float64(at-scriptHold) / float64(scriptSeparate-scriptHold)
		return holdGap + (apartGap-holdGap)*smoothstep(geom.Clamp01(k))
	}
}

func smoothstep(k float64) float64 {
	return k * k * (3 - 2*k)
}

// scriptHand lays out 21 landmarks with the wrist at (x, y) and fingers
// pointing up, spread towards side (-1 left, 1 right).
func scriptHand(x, y, side float64) []geom.Point3D {
	pts := make([]geom.Point3D, gesture.LandmarkCount)
	pts[0] = geom.Point3D{X: x, Y: y}
	for i := 1; i < gesture.LandmarkCount; i++ {
		finger := float64((i - 1) / 4)
		joint := float64((i-1)%4 + 1)
		pts[i] = geom.Point3D{
			X: x + side*(0.012*finger-0.02),
			Y: y - 0.025*joint - 0.01*(2-math.Abs(finger-2)),
			Z: -0.002 * joint,
		}
	}
	return pts
}
