package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Template != "heart" || cfg.Cooldown != 3*time.Second || !cfg.Loop {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	th := cfg.Thresholds()
	if th.WristDistance != 0.25 || th.CenterDistance != 0.20 || th.Stability != 0.7 {
		t.Errorf("Thresholds() = %+v", th)
	}
	opts := cfg.ParticleOptions()
	if opts.LifeMin != 5*time.Second || opts.LifeMax != 8*time.Second {
		t.Errorf("ParticleOptions() lifetimes = %v..%v", opts.LifeMin, opts.LifeMax)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HANDCON_WRIST_DISTANCE", "0.3")
	t.Setenv("HANDCON_COOLDOWN", "1500ms")
	t.Setenv("HANDCON_TEMPLATE", "star")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.WristDistance != 0.3 {
		t.Errorf("WristDistance = %v, want 0.3", cfg.WristDistance)
	}
	if cfg.Cooldown != 1500*time.Millisecond {
		t.Errorf("Cooldown = %v, want 1.5s", cfg.Cooldown)
	}
	if cfg.Template != "star" {
		t.Errorf("Template = %q, want star", cfg.Template)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unparseable", "HANDCON_COOLDOWN", "soon"},
		{"stability above one", "HANDCON_STABILITY", "1.5"},
		{"zero wrist distance", "HANDCON_WRIST_DISTANCE", "0"},
		{"lifetime too short", "HANDCON_LIFE_MIN", "1s"},
		{"inverted lifetimes", "HANDCON_LIFE_MAX", "4s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded", tt.key, tt.value)
			}
		})
	}
}
