// Package game is the ebiten front end: it steps the session once per tick
// and draws the constellation and the gesture status.
package game

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/hand-constellation/internal/audio"
	"github.com/iburimskiy/hand-constellation/internal/config"
	"github.com/iburimskiy/hand-constellation/internal/landmarks"
	"github.com/iburimskiy/hand-constellation/internal/log"
	"github.com/iburimskiy/hand-constellation/internal/session"
)

const tick = time.Second / config.TPS

// Game implements ebiten.Game.
type Game struct {
	cfg     config.Config
	ctx     context.Context
	session *session.Session
	chime   *audio.Chime

	renderer screenRenderer

	// viz
	time  float64
	pulse float64

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
	quit    atomic.Bool
}

// NewGame wraps a session. chime may be nil when sound is off.
func NewGame(ctx context.Context, cfg config.Config, s *session.Session, chime *audio.Chime) *Game {
	return &Game{
		cfg:      cfg,
		ctx:      ctx,
		session:  s,
		chime:    chime,
		renderer: screenRenderer{glow: cfg.Glow},
		prevKey:  map[ebiten.Key]bool{},
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if g.quit.Load() || justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		paused := g.session.TogglePause()
		log.Debug("feed paused", "paused", paused)
	}
	if justPressed(ebiten.KeyR) {
		g.session.Reset()
		g.lastErr = nil
	}
	if justPressed(ebiten.KeyO) {
		if err := g.openRecordingDialog(); err != nil {
			g.lastErr = err
			log.Error("open recording", "error", err)
		}
	}

	g.session.Step(g.ctx, tick)

	g.time += tick.Seconds()
	if g.chime != nil {
		g.pulse = g.chime.Level()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawHands(screen)

	g.renderer.screen = screen
	g.renderer.pulse = g.pulse
	g.session.Engine().Render(&g.renderer)
	g.renderer.screen = nil

	g.drawStatus(screen)
}

// Quit ends the game loop on the next tick. Safe from any goroutine.
func (g *Game) Quit() {
	g.quit.Store(true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *Game) openRecordingDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Landmark Recording"),
		zenity.FileFilters{{
			Name:     "Landmark recordings",
			Patterns: []string{"*.jsonl", "*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	feed, err := landmarks.NewFeed(landmarks.ReplayOpener(filename), g.cfg.Loop)
	if err != nil {
		return err
	}
	g.session.SetFeed(feed)
	log.Info("replaying recording", "path", filename, "loop", g.cfg.Loop)
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
