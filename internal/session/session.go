// Package session wires the landmark feed, the gesture recognizer and the
// particle engine into one frame-driven loop.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/hand-constellation/internal/constellation"
	"github.com/iburimskiy/hand-constellation/internal/geom"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
	"github.com/iburimskiy/hand-constellation/internal/landmarks"
	"github.com/iburimskiy/hand-constellation/internal/log"
	"github.com/iburimskiy/hand-constellation/internal/particles"
)

// Chimer plays the spawn cue.
type Chimer interface {
	Ring()
}

// Projector maps a normalized landmark position to screen space.
type Projector func(p geom.Point3D) geom.Point2D

// Spawn describes one fired constellation.
type Spawn struct {
	ID         uuid.UUID
	At         time.Duration
	Particles  int
	Confidence float64
}

// Session is driven by the game loop: Step advances the clock, feeds due
// frames to the recognizer and ticks the particle engine. All methods run
// on the game loop goroutine.
type Session struct {
	recognizer *gesture.Recognizer
	engine     *particles.Engine
	template   constellation.Template
	scale      float64
	project    Projector
	chime      Chimer

	feed   *landmarks.Feed
	clock  time.Duration
	paused bool

	state     gesture.State
	hands     []gesture.HandObservation
	lastSpawn *Spawn
	spawns    int
	rejected  int
}

// Options configures a Session. Chime may be nil.
type Options struct {
	Recognizer *gesture.Recognizer
	Engine     *particles.Engine
	Template   constellation.Template
	Scale      float64
	Project    Projector
	Chime      Chimer
}

// New creates a session reading from feed.
func New(opts Options, feed *landmarks.Feed) *Session {
	return &Session{
		recognizer: opts.Recognizer,
		engine:     opts.Engine,
		template:   opts.Template,
		scale:      opts.Scale,
		project:    opts.Project,
		chime:      opts.Chime,
		feed:       feed,
	}
}

// Step advances the session by dt.
func (s *Session) Step(ctx context.Context, dt time.Duration) {
	if !s.paused && s.feed != nil {
		s.clock += dt
		for _, f := range s.feed.Due(ctx, s.clock) {
			s.process(f)
		}
	}
	s.engine.Tick(dt)
}

func (s *Session) process(f landmarks.Frame) {
	hands := f.Observations()
	st, fired, err := s.recognizer.Process(hands, f.At)
	if err != nil {
		s.rejected++
		log.Warn("skipping frame", "at", f.At, "error", err)
		return
	}
	s.state = st
	s.hands = hands
	if fired {
		s.spawn(f.At, hands, st.Confidence)
	}
}

func (s *Session) spawn(at time.Duration, hands []gesture.HandObservation, confidence float64) {
	mid, ok := gesture.Midpoint(hands)
	if !ok {
		return
	}
	n := s.engine.Spawn(s.template, s.project(mid), s.scale)
	sp := &Spawn{ID: uuid.New(), At: at, Particles: n, Confidence: confidence}
	s.lastSpawn = sp
	s.spawns++

	log.With("spawn", sp.ID).Info("constellation spawned",
		"template", s.template.Name,
		"particles", n,
		"confidence", confidence,
		"at", at)

	if s.chime != nil {
		s.chime.Ring()
	}
}

// SetFeed swaps the landmark source, closing the old one and restarting the
// recognizer from a clean state. Live particles keep animating.
func (s *Session) SetFeed(feed *landmarks.Feed) {
	if s.feed != nil {
		_ = s.feed.Close()
	}
	s.feed = feed
	s.clock = 0
	s.paused = false
	s.recognizer.Reset()
	s.state = gesture.State{}
	s.hands = nil
}

// Reset stops the constellation and forgets stability and cooldown history.
func (s *Session) Reset() {
	s.engine.Stop()
	s.recognizer.Reset()
	s.state = gesture.State{}
	s.hands = nil
	log.Debug("session reset", "clock", s.clock)
}

// TogglePause pauses or resumes the feed. Particles keep animating.
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Close releases the feed.
func (s *Session) Close() error {
	if s.feed == nil {
		return nil
	}
	return s.feed.Close()
}

func (s *Session) State() gesture.State             { return s.state }
func (s *Session) Hands() []gesture.HandObservation { return s.hands }
func (s *Session) Engine() *particles.Engine        { return s.engine }
func (s *Session) Clock() time.Duration             { return s.clock }
func (s *Session) Paused() bool                     { return s.paused }
func (s *Session) Spawns() int                      { return s.spawns }
func (s *Session) Rejected() int                    { return s.rejected }

// Skipped returns how many malformed recording lines the current feed dropped.
func (s *Session) Skipped() int {
	if s.feed == nil {
		return 0
	}
	return s.feed.Skipped()
}

// LastSpawn returns the most recent spawn, if any.
func (s *Session) LastSpawn() (Spawn, bool) {
	if s.lastSpawn == nil {
		return Spawn{}, false
	}
	return *s.lastSpawn, true
}

// FeedDone reports whether the feed ran out of frames.
func (s *Session) FeedDone() bool {
	return s.feed == nil || s.feed.Done()
}
