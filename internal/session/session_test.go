package session

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/hand-constellation/internal/constellation"
	"github.com/iburimskiy/hand-constellation/internal/geom"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
	"github.com/iburimskiy/hand-constellation/internal/landmarks"
	"github.com/iburimskiy/hand-constellation/internal/particles"
)

const step = time.Second / 60

type countingChime struct{ rings int }

func (c *countingChime) Ring() { c.rings++ }

func newTestSession(t *testing.T, open landmarks.Opener, loop bool) (*Session, *countingChime) {
	t.Helper()
	tpl, err := constellation.LoadEmbedded("star")
	if err != nil {
		t.Fatal(err)
	}
	feed, err := landmarks.NewFeed(open, loop)
	if err != nil {
		t.Fatal(err)
	}
	chime := &countingChime{}
	s := New(Options{
		Recognizer: gesture.NewRecognizer(
			gesture.NewClassifier(gesture.DefaultThresholds(), nil),
			gesture.NewTrigger(gesture.DefaultTriggerConfidence, gesture.DefaultCooldown),
		),
		Engine:   particles.New(particles.DefaultOptions(), rand.New(rand.NewSource(7))),
		Template: tpl,
		Scale:    100,
		Project: func(p geom.Point3D) geom.Point2D {
			return geom.Point2D{X: p.X * 1000, Y: p.Y * 500}
		},
		Chime: chime,
	}, feed)
	t.Cleanup(func() { s.Close() })
	return s, chime
}

func run(s *Session, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		s.Step(context.Background(), step)
	}
}

func TestSession_ScriptedSpawns(t *testing.T) {
	s, chime := newTestSession(t, landmarks.ScriptedOpener(), false)
	run(s, 4*time.Second)

	if s.Spawns() != 1 {
		t.Fatalf("Spawns() after 4s = %d, want 1", s.Spawns())
	}
	sp, ok := s.LastSpawn()
	if !ok || sp.ID == uuid.Nil || sp.Particles != 21 || sp.Confidence <= 0.8 {
		t.Errorf("LastSpawn() = %+v, %v", sp, ok)
	}
	if s.Engine().Len() != 21 || s.Engine().State() != particles.Running {
		t.Errorf("engine has %d particles in state %v", s.Engine().Len(), s.Engine().State())
	}
	if chime.rings != 1 {
		t.Errorf("chime rang %d times, want 1", chime.rings)
	}

	run(s, 7*time.Second)
	if s.Spawns() != 2 {
		t.Errorf("Spawns() after the script = %d, want 2", s.Spawns())
	}
	if !s.FeedDone() {
		t.Error("non-looping feed not done after the script")
	}
	if st := s.State(); st.Reason != gesture.ReasonWrongHandCount {
		t.Errorf("final reason = %q, want %q", st.Reason, gesture.ReasonWrongHandCount)
	}

	// Particles outlive the feed and then the loop idles.
	run(s, 9*time.Second)
	if s.Engine().State() != particles.Idle || s.Engine().Len() != 0 {
		t.Errorf("engine still %v with %d particles", s.Engine().State(), s.Engine().Len())
	}
}

func TestSession_SpawnCenteredOnHands(t *testing.T) {
	s, _ := newTestSession(t, landmarks.ScriptedOpener(), false)
	run(s, 4*time.Second)

	var cx, cy float64
	ps := s.Engine().Particles()
	for _, p := range ps {
		cx += p.Target.X
		cy += p.Target.Y
	}
	cx /= float64(len(ps))
	cy /= float64(len(ps))

	// Hands meet around x=0.5 in the script.
	if cx < 450 || cx > 550 {
		t.Errorf("constellation centered at x=%v, want near 500", cx)
	}
	if cy < 0 || cy > 500 {
		t.Errorf("constellation centered at y=%v, off screen", cy)
	}
}

func TestSession_PauseAndReset(t *testing.T) {
	s, _ := newTestSession(t, landmarks.ScriptedOpener(), true)
	run(s, 4*time.Second)
	if s.Spawns() == 0 {
		t.Fatal("no spawn before pause")
	}

	if !s.TogglePause() {
		t.Fatal("TogglePause() did not pause")
	}
	clock := s.Clock()
	run(s, time.Second)
	if s.Clock() != clock {
		t.Errorf("clock advanced while paused: %v -> %v", clock, s.Clock())
	}

	if len(s.Hands()) != 2 {
		t.Fatalf("Hands() before reset = %d, want 2", len(s.Hands()))
	}
	s.Reset()
	if s.Engine().Len() != 0 || s.State().Detected {
		t.Errorf("Reset left %d particles, state %+v", s.Engine().Len(), s.State())
	}
	if s.Hands() != nil {
		t.Errorf("Reset kept %d hands on screen", len(s.Hands()))
	}
	s.Reset()

	if s.TogglePause() {
		t.Error("TogglePause() did not resume")
	}
}

func TestSession_RejectsMalformedHands(t *testing.T) {
	rec := `{"t_ms": 0, "hands": [[[0.5, 0.5, 0]], [[0.6, 0.5, 0]]]}
{"t_ms": 10, "hands": []}
`
	open := func() (landmarks.Source, error) {
		return landmarks.NewReplaySource(strings.NewReader(rec)), nil
	}
	s, _ := newTestSession(t, open, false)
	run(s, 100*time.Millisecond)

	if s.Rejected() != 1 {
		t.Errorf("Rejected() = %d, want 1", s.Rejected())
	}
	if s.State().Reason != gesture.ReasonWrongHandCount {
		t.Errorf("reason = %q after the empty frame", s.State().Reason)
	}
}

func TestSession_CountsSkippedLines(t *testing.T) {
	rec := `{"t_ms": 0, "hands": []}
not a frame
{"t_ms": 20, "hands": []}
`
	open := func() (landmarks.Source, error) {
		return landmarks.NewReplaySource(strings.NewReader(rec)), nil
	}
	s, _ := newTestSession(t, open, false)
	run(s, 100*time.Millisecond)

	if s.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", s.Skipped())
	}
	if s.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", s.Rejected())
	}
}

func TestSession_SetFeed(t *testing.T) {
	s, _ := newTestSession(t, landmarks.ScriptedOpener(), false)
	run(s, 4*time.Second)
	live := s.Engine().Len()

	feed, err := landmarks.NewFeed(landmarks.ScriptedOpener(), false)
	if err != nil {
		t.Fatal(err)
	}
	s.SetFeed(feed)
	if s.Clock() != 0 || s.Hands() != nil {
		t.Errorf("SetFeed kept clock %v and %d hands", s.Clock(), len(s.Hands()))
	}
	if s.Engine().Len() != live {
		t.Error("SetFeed should not cancel live particles")
	}

	run(s, 4*time.Second)
	if s.Spawns() != 2 {
		t.Errorf("Spawns() = %d, want a fresh spawn from the new feed", s.Spawns())
	}
}
