package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/hand-constellation/internal/audio"
	"github.com/iburimskiy/hand-constellation/internal/config"
	"github.com/iburimskiy/hand-constellation/internal/constellation"
	"github.com/iburimskiy/hand-constellation/internal/game"
	"github.com/iburimskiy/hand-constellation/internal/gesture"
	"github.com/iburimskiy/hand-constellation/internal/landmarks"
	"github.com/iburimskiy/hand-constellation/internal/log"
	"github.com/iburimskiy/hand-constellation/internal/particles"
	"github.com/iburimskiy/hand-constellation/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	replay := flag.String("replay", cfg.Replay, "landmark recording to replay (JSON lines); empty runs the scripted demo")
	level := flag.String("log", cfg.LogLevel, "log level: debug, info, warn, error")
	dump := flag.String("dump", "", "write the scripted demo as a recording to this path and exit")
	flag.Parse()

	log.Init(*level)

	if *dump != "" {
		if err := dumpScript(*dump); err != nil {
			log.Error("dump failed", "error", err)
			os.Exit(1)
		}
		log.Info("scripted demo written", "path", *dump)
		return
	}

	if err := run(cfg, *replay); err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, replay string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tpl, err := constellation.Load(cfg.Template)
	if err != nil {
		return err
	}

	open := landmarks.ScriptedOpener()
	if replay != "" {
		open = landmarks.ReplayOpener(replay)
	}
	feed, err := landmarks.NewFeed(open, cfg.Loop)
	if err != nil {
		return err
	}

	var chime *audio.Chime
	if cfg.Sound {
		chime = newChime(cfg)
	}

	th := cfg.Thresholds()
	opts := session.Options{
		Recognizer: gesture.NewRecognizer(
			gesture.NewClassifier(th, gesture.NewStabilityTracker(th)),
			gesture.NewTrigger(cfg.TriggerConfidence, cfg.Cooldown),
		),
		Engine:   particles.New(cfg.ParticleOptions(), nil),
		Template: tpl,
		Scale:    cfg.Scale,
		Project:  game.ToScreen,
	}
	if chime != nil {
		opts.Chime = chime
	}
	s := session.New(opts, feed)
	defer s.Close()

	log.Info("starting",
		"template", tpl.Name,
		"points", tpl.Len(),
		"replay", replay,
		"sound", chime != nil)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Hand Constellation - hold both hands together and still")
	ebiten.SetTPS(config.TPS)

	g := game.NewGame(ctx, cfg, s, chime)
	go func() {
		<-ctx.Done()
		g.Quit()
	}()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// newChime returns nil when audio is unavailable; the app runs silent.
func newChime(cfg config.Config) *audio.Chime {
	sr := audio.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		log.Warn("sound disabled", "error", err)
		return nil
	}
	chime, err := audio.NewChime(speakerOutput{}, cfg.ChimeFile, cfg.Volume, config.ChimeRingSize)
	if err != nil {
		log.Warn("sound disabled", "error", err)
		return nil
	}
	return chime
}

func dumpScript(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src := landmarks.NewScriptedSource()
	defer src.Close()
	for {
		fr, err := src.Next(context.Background())
		if err != nil {
			break
		}
		if err := landmarks.Encode(f, fr); err != nil {
			return err
		}
	}
	return f.Close()
}
