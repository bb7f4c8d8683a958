package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/hand-constellation/internal/config"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
	"github.com/iburimskiy/hand-constellation/internal/particles"
)

// screenRenderer draws particles onto one frame's screen image.
type screenRenderer struct {
	screen *ebiten.Image
	glow   bool
	pulse  float64 // 0..1 chime loudness
}

func (r *screenRenderer) DrawParticle(p *particles.Particle) {
	c := p.RGBA()
	if c.A == 0 {
		return
	}
	x, y := float32(p.Position.X), float32(p.Position.Y)
	size := p.Size * (1 + 0.3*r.pulse)

	if r.glow {
		halo := c
		halo.A = uint8(float64(c.A) * (config.GlowAlpha + 0.25*r.pulse))
		vector.DrawFilledCircle(r.screen, x, y, float32(size*config.GlowScale), halo, true)
	}
	vector.DrawFilledCircle(r.screen, x, y, float32(size), c, true)

	// Rotating sparkle
	arm := size * 1.8
	dx, dy := math.Cos(p.Rotation)*arm, math.Sin(p.Rotation)*arm
	spark := color.NRGBA{R: 255, G: 255, B: 255, A: c.A / 2}
	vector.StrokeLine(r.screen, x-float32(dx), y-float32(dy), x+float32(dx), y+float32(dy), 1, spark, true)
	vector.StrokeLine(r.screen, x+float32(dy), y-float32(dx), x-float32(dy), y+float32(dx), 1, spark, true)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	// Slow vertical gradient; brightens a little while a gesture is held
	lift := 0.0
	if g.session.State().Detected {
		lift = 10
	}
	for y := 0; y < config.WindowHeight; y += 2 {
		ratio := float64(y) / float64(config.WindowHeight)
		r := uint8(6 + 8*math.Sin(g.time*0.5+ratio*math.Pi) + lift)
		gv := uint8(8 + 10*math.Cos(g.time*0.3+ratio*math.Pi))
		b := uint8(22 + 18*math.Sin(g.time*0.7+ratio*math.Pi) + lift)
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 2, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) drawHands(screen *ebiten.Image) {
	dot := color.RGBA{R: 120, G: 140, B: 170, A: 120}
	for _, h := range g.session.Hands() {
		for _, p := range h {
			s := ToScreen(p)
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), 2, dot, false)
		}
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	st := g.session.State()
	status := "Gesture: " + st.String()
	if st.Metrics != nil {
		status += fmtMetrics(st.Metrics)
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	info := "Particles: " + itoa(g.session.Engine().Len()) +
		" | Spawns: " + itoa(g.session.Spawns()) +
		" | " + formatDuration(g.session.Clock())
	if sp, ok := g.session.LastSpawn(); ok {
		info += " | Last: " + sp.ID.String()[:8] + " @" + ftoa(sp.Confidence)
	}
	if n := g.session.Rejected(); n > 0 {
		info += " | rejected " + itoa(n)
	}
	if n := g.session.Skipped(); n > 0 {
		info += " | skipped " + itoa(n)
	}
	if g.session.Paused() {
		info += " | paused"
	}
	if g.session.FeedDone() {
		info += " | feed ended"
	}
	ebitenutil.DebugPrintAt(screen, info, 12, 28)

	help := "O: open recording  R: reset  Space: pause  Esc/Q: quit"
	if g.lastErr != nil {
		help += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, help, 12, config.WindowHeight-20)
}

func fmtMetrics(m *gesture.Metrics) string {
	return " | wrist " + ftoa(m.WristDistance) + " center " + ftoa(m.CenterDistance) + " still " + ftoa(m.Stability)
}
