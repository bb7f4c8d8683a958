package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the renderer can pulse with the chime. The speaker goroutine
// writes; the game loop reads.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	fresh     int // samples written since the last take
	mu        sync.Mutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.fresh += n
		if t.fresh > len(t.buffer) {
			t.fresh = len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// take returns the samples written since the previous call, oldest first.
func (t *levelTap) take() [][2]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.fresh
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	t.fresh = 0
	return out
}

// rmsLevel compresses the RMS of samples into a 0..1 visual level.
func rmsLevel(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	return math.Min(1, math.Pow(rms, 0.3))
}
