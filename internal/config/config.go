// Package config holds the window constants and the env-driven settings.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/iburimskiy/hand-constellation/internal/gesture"
	"github.com/iburimskiy/hand-constellation/internal/particles"
)

const (
	WindowWidth  = 1024
	WindowHeight = 576
	TPS          = 60

	ChimeRingSize = 4096

	// Visualization parameters
	GlowScale = 2.4
	GlowAlpha = 0.25
)

// Config is read from HANDCON_* environment variables.
type Config struct {
	LogLevel string `env:"HANDCON_LOG_LEVEL" envDefault:"info"`

	// Recording to replay; empty runs the built-in scripted demo.
	Replay string `env:"HANDCON_REPLAY"`
	Loop   bool   `env:"HANDCON_LOOP"   envDefault:"true"`

	// Template is an embedded template name or a path to a .json file.
	Template string  `env:"HANDCON_TEMPLATE" envDefault:"heart"`
	Scale    float64 `env:"HANDCON_SCALE"    envDefault:"160"`
	Glow     bool    `env:"HANDCON_GLOW"     envDefault:"true"`

	Sound     bool    `env:"HANDCON_SOUND"      envDefault:"true"`
	ChimeFile string  `env:"HANDCON_CHIME_FILE"`
	Volume    float64 `env:"HANDCON_VOLUME"     envDefault:"-1"`

	WristDistance  float64 `env:"HANDCON_WRIST_DISTANCE"  envDefault:"0.25"`
	CenterDistance float64 `env:"HANDCON_CENTER_DISTANCE" envDefault:"0.20"`
	Stability      float64 `env:"HANDCON_STABILITY"       envDefault:"0.7"`

	TriggerConfidence float64       `env:"HANDCON_TRIGGER_CONFIDENCE" envDefault:"0.8"`
	Cooldown          time.Duration `env:"HANDCON_COOLDOWN"           envDefault:"3s"`

	LifeMin time.Duration `env:"HANDCON_LIFE_MIN" envDefault:"5s"`
	LifeMax time.Duration `env:"HANDCON_LIFE_MAX" envDefault:"8s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.WristDistance <= 0 || c.CenterDistance <= 0:
		return fmt.Errorf("proximity thresholds must be positive")
	case c.Stability < 0 || c.Stability > 1:
		return fmt.Errorf("stability threshold %v outside [0,1]", c.Stability)
	case c.Cooldown < 0:
		return fmt.Errorf("cooldown %v is negative", c.Cooldown)
	case c.LifeMin < particles.FadeIn+particles.FadeOut:
		return fmt.Errorf("minimum lifetime %v shorter than the fade in and out", c.LifeMin)
	case c.LifeMax < c.LifeMin:
		return fmt.Errorf("lifetime range %v..%v is inverted", c.LifeMin, c.LifeMax)
	case c.Scale <= 0:
		return fmt.Errorf("scale must be positive")
	}
	return nil
}

// Thresholds projects the gesture calibration.
func (c Config) Thresholds() gesture.Thresholds {
	th := gesture.DefaultThresholds()
	th.WristDistance = c.WristDistance
	th.CenterDistance = c.CenterDistance
	th.Stability = c.Stability
	return th
}

// ParticleOptions projects the particle settings.
func (c Config) ParticleOptions() particles.Options {
	opts := particles.DefaultOptions()
	opts.LifeMin = c.LifeMin
	opts.LifeMax = c.LifeMax
	return opts
}
