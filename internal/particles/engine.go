package particles

import (
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/constellation"
	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// SchedulerState tells whether the tick loop has anything to animate.
type SchedulerState int

const (
	Idle SchedulerState = iota
	Running
)

func (s SchedulerState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Renderer draws a single particle. Implementations read the particle and
// must not keep the pointer past the call.
type Renderer interface {
	DrawParticle(p *Particle)
}

// Options holds the spawn ranges and per-tick physics constants.
type Options struct {
	Jitter float64 // max initial offset from the target, per axis

	SizeMin, SizeMax float64
	LifeMin, LifeMax time.Duration

	SpeedMax         float64 // max initial speed per axis, per tick
	RotationSpeedMax float64 // radians per tick

	Damping    float64 // velocity multiplier per tick
	Attraction float64 // fraction of the distance to target closed per tick
	Wobble     float64 // amplitude of the velocity oscillation per tick
	WobbleFreq float64 // oscillation frequency in radians per second

	HueMin, HueMax float64
}

// DefaultOptions returns the tuned simulation constants.
func DefaultOptions() Options {
	return Options{
		Jitter:           40,
		SizeMin:          3,
		SizeMax:          7,
		LifeMin:          5 * time.Second,
		LifeMax:          8 * time.Second,
		SpeedMax:         1.0,
		RotationSpeedMax: 0.05,
		Damping:          0.98,
		Attraction:       0.02,
		Wobble:           0.02,
		WobbleFreq:       1.5,
		HueMin:           180,
		HueMax:           300,
	}
}

// Engine owns the live particle set. It is not safe for concurrent use:
// Spawn, Tick and Stop mutate, Render only reads, and callers serialize them.
type Engine struct {
	opts      Options
	rng       *rand.Rand
	particles []Particle
	state     SchedulerState
	elapsed   time.Duration
}

// New creates an idle engine. A nil rng gets a time-seeded one.
func New(opts Options, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{opts: opts, rng: rng}
}

// Spawn replaces any live particles with one particle per template anchor,
// placed around center at the given scale. It returns the particle count and
// starts the tick loop when there is something to animate.
func (e *Engine) Spawn(t constellation.Template, center geom.Point2D, scale float64) int {
	targets := t.Place(center, scale)

	e.particles = e.particles[:0]
	for i, target := range targets {
		e.particles = append(e.particles, e.newParticle(i, target))
	}

	if len(e.particles) == 0 {
		e.state = Idle
		return 0
	}
	e.state = Running
	return len(e.particles)
}

func (e *Engine) newParticle(i int, target geom.Point2D) Particle {
	o := e.opts
	jitter := geom.Point2D{
		X: (e.rng.Float64()*2 - 1) * o.Jitter,
		Y: (e.rng.Float64()*2 - 1) * o.Jitter,
	}
	life := o.LifeMin
	if o.LifeMax > o.LifeMin {
		life += time.Duration(e.rng.Int63n(int64(o.LifeMax - o.LifeMin + 1)))
	}

	return Particle{
		Position: target.Add(jitter),
		Target:   target,
		Velocity: geom.Point2D{
			X: (e.rng.Float64()*2 - 1) * o.SpeedMax,
			Y: (e.rng.Float64()*2 - 1) * o.SpeedMax,
		},
		Size:          o.SizeMin + e.rng.Float64()*(o.SizeMax-o.SizeMin),
		Color:         randomColor(e.rng, o.HueMin, o.HueMax),
		Rotation:      e.rng.Float64() * 2 * math.Pi,
		RotationSpeed: (e.rng.Float64()*2 - 1) * o.RotationSpeedMax,
		MaxAge:        life,
		Seed:          float64(i) * 0.7,
	}
}

// Tick advances the simulation by dt. It does nothing while idle, and goes
// idle as soon as the last particle expires.
func (e *Engine) Tick(dt time.Duration) {
	if e.state != Running {
		return
	}
	e.elapsed += dt
	t := e.elapsed.Seconds() * e.opts.WobbleFreq

	alive := e.particles[:0]
	for i := range e.particles {
		p := e.particles[i]
		p.Age += dt

		p.Velocity.X += math.Sin(t+p.Seed) * e.opts.Wobble
		p.Velocity.Y += math.Cos(t+p.Seed*1.3) * e.opts.Wobble
		p.Velocity = p.Velocity.Scale(e.opts.Damping)
		p.Position = p.Position.Add(p.Velocity)

		p.Position.X += (p.Target.X - p.Position.X) * e.opts.Attraction
		p.Position.Y += (p.Target.Y - p.Position.Y) * e.opts.Attraction

		p.Rotation += p.RotationSpeed

		if !p.Expired() {
			alive = append(alive, p)
		}
	}
	e.particles = alive

	if len(e.particles) == 0 {
		e.state = Idle
		e.elapsed = 0
	}
}

// Render hands every live particle to r.
func (e *Engine) Render(r Renderer) {
	for i := range e.particles {
		r.DrawParticle(&e.particles[i])
	}
}

// Stop drops all particles and idles the loop. Safe to call at any time.
func (e *Engine) Stop() {
	e.particles = e.particles[:0]
	e.state = Idle
	e.elapsed = 0
}

// Len returns the live particle count.
func (e *Engine) Len() int {
	return len(e.particles)
}

// State returns the scheduler state.
func (e *Engine) State() SchedulerState {
	return e.state
}

// Particles returns a copy of the live set.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}
