// Package particles runs the constellation particle simulation: spawning a
// burst from a template, advancing it every tick and dropping expired
// particles.
package particles

import (
	"image/color"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// Lifecycle timing.
const (
	FadeIn  = 500 * time.Millisecond
	FadeOut = 1000 * time.Millisecond
)

// Phase is a particle's life phase. It is always derived from age.
type Phase int

const (
	Spawning Phase = iota
	Floating
	Dying
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "spawning"
	case Floating:
		return "floating"
	case Dying:
		return "dying"
	default:
		return "unknown"
	}
}

// Particle is one point of light in a constellation.
type Particle struct {
	Position geom.Point2D
	Target   geom.Point2D
	Velocity geom.Point2D

	Size          float64
	Color         color.NRGBA
	Rotation      float64
	RotationSpeed float64

	Age    time.Duration
	MaxAge time.Duration

	// Seed offsets the wobble so identical particles drift apart.
	Seed float64
}

// Phase computes the life phase from Age and MaxAge.
func (p *Particle) Phase() Phase {
	switch {
	case p.Age < FadeIn:
		return Spawning
	case p.Age < p.MaxAge-FadeOut:
		return Floating
	default:
		return Dying
	}
}

// Alpha computes the opacity for the current phase.
func (p *Particle) Alpha() float64 {
	switch p.Phase() {
	case Spawning:
		return float64(p.Age) / float64(FadeIn)
	case Floating:
		return 1
	default:
		into := p.Age - (p.MaxAge - FadeOut)
		return geom.Clamp01(1 - float64(into)/float64(FadeOut))
	}
}

// Expired reports whether the particle has reached the end of its life.
func (p *Particle) Expired() bool {
	return p.Age >= p.MaxAge
}

// RGBA returns Color with the alpha channel scaled by Alpha.
func (p *Particle) RGBA() color.NRGBA {
	c := p.Color
	c.A = uint8(float64(c.A) * p.Alpha())
	return c
}
