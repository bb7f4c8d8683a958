// Package audio plays the short chime that accompanies a constellation.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
)

const (
	SampleRate = beep.SampleRate(44100)

	chimeLength    = 1200 * time.Millisecond
	chimeBaseHz    = 880.0
	chimeDecay     = 4.0
	chimeGain      = 0.35
	resampleQual   = 4
	levelSmoothing = 0.6
)

// Output plays a streamer, normally by handing it to the speaker mixer.
type Output interface {
	Play(s beep.Streamer)
}

// Chime is a pre-rendered bell sound with a level meter.
type Chime struct {
	out    Output
	buf    *beep.Buffer
	volume float64
	ring   int

	mu    sync.Mutex
	tap   *levelTap
	level float64
}

// NewChime renders the chime. An empty file synthesizes a bell tone;
// otherwise the WAV file at that path is used. volume is in the
// effects.Volume base-2 scale (0 is unchanged, -1 is half).
func NewChime(out Output, file string, volume float64, ringSize int) (*Chime, error) {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)

	if file == "" {
		buf.Append(beep.Take(SampleRate.N(chimeLength), bell(SampleRate)))
	} else if err := appendWAV(buf, file); err != nil {
		return nil, err
	}

	return &Chime{out: out, buf: buf, volume: volume, ring: ringSize}, nil
}

func appendWAV(buf *beep.Buffer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open chime: %w", err)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode chime: %w", err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != SampleRate {
		src = beep.Resample(resampleQual, format.SampleRate, SampleRate, s)
	}
	buf.Append(src)
	return nil
}

// bell is two decaying partials, a fifth apart.
func bell(sr beep.SampleRate) beep.Streamer {
	var i int
	dt := 1 / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			t := float64(i) * dt
			env := math.Exp(-t*chimeDecay) * chimeGain
			v := env * (math.Sin(2*math.Pi*chimeBaseHz*t) + 0.5*math.Sin(2*math.Pi*chimeBaseHz*1.5*t))
			samples[k] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

// Ring starts a new chime. A ringing chime is not interrupted.
func (c *Chime) Ring() {
	tap := newLevelTap(c.buf.Streamer(0, c.buf.Len()), c.ring)
	c.mu.Lock()
	c.tap = tap
	c.mu.Unlock()

	c.out.Play(&effects.Volume{Streamer: tap, Base: 2, Volume: c.volume})
}

// Len returns the chime length in samples.
func (c *Chime) Len() int {
	return c.buf.Len()
}

// Level returns a smoothed 0..1 loudness of the most recent chime, for
// pulsing the glow. Call once per frame.
func (c *Chime) Level() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var mag float64
	if c.tap != nil {
		mag = rmsLevel(c.tap.take())
	}
	c.level = levelSmoothing*c.level + (1-levelSmoothing)*mag
	if c.level < 1e-3 {
		c.level = 0
	}
	return c.level
}
