package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	t.Parallel()

	got := embedded()
	want := Default()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("embedded yaml drifted from Default():\n got=%+v\nwant=%+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoad_CustomPathOverridesOnlyGivenKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "variant: powerup\npowerup:\n  lives: 5\n  extend_duration: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Variant != VariantPowerUp {
		t.Fatalf("variant: got %q", cfg.Variant)
	}
	if cfg.PowerUp.Lives != 5 {
		t.Fatalf("lives: got %d", cfg.PowerUp.Lives)
	}
	if cfg.PowerUp.ExtendDuration != 2*time.Second {
		t.Fatalf("extend_duration: got %v", cfg.PowerUp.ExtendDuration)
	}
	// Untouched keys keep their defaults.
	if cfg.PowerUp.ExtendFactor != 1.5 {
		t.Fatalf("extend_factor: got %v", cfg.PowerUp.ExtendFactor)
	}
	if cfg.Blocks.Cols != 10 || cfg.Paddle.Width != 100 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_CustomPathErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("fps: [1, 2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(bad)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("unexpected error: %v", err)
	}
	if IsValidation(err) {
		t.Fatalf("parse error must not be a validation error")
	}
}

func TestTicks(t *testing.T) {
	t.Parallel()

	cfg := Default()
	tests := []struct {
		d    time.Duration
		want int64
	}{
		{10 * time.Second, 600},
		{3334 * time.Millisecond, 200},
		{time.Second / 120, 0},
		{0, 0},
		{-time.Second, 0},
	}
	for _, tt := range tests {
		if got := cfg.Ticks(tt.d); got != tt.want {
			t.Fatalf("Ticks(%v): got %d want %d", tt.d, got, tt.want)
		}
	}
}

func TestVariantRules(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Lives() != 1 {
		t.Fatalf("sweep lives: got %d", cfg.Lives())
	}
	if cfg.DropChance() != 1.0 {
		t.Fatalf("sweep drop chance: got %v", cfg.DropChance())
	}
	cfg.Variant = VariantPowerUp
	if cfg.Lives() != 3 {
		t.Fatalf("powerup lives: got %d", cfg.Lives())
	}
	if cfg.DropChance() != 0.3 {
		t.Fatalf("powerup drop chance: got %v", cfg.DropChance())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(c *Config)
		field string
	}{
		{"variant", func(c *Config) { c.Variant = "arcade" }, "variant"},
		{"fps", func(c *Config) { c.FPS = 1 }, "fps"},
		{"paddle too wide", func(c *Config) { c.Paddle.Width = 800 }, "paddle.width"},
		{"ball speed", func(c *Config) { c.Ball.Speed = 0 }, "ball.speed"},
		{"min horizontal", func(c *Config) { c.Ball.MinHorizontalSpeed = 9 }, "ball.min_horizontal_speed"},
		{"min horizontal zero", func(c *Config) { c.Ball.MinHorizontalSpeed = 0 }, "ball.min_horizontal_speed"},
		{"grid overlaps paddle", func(c *Config) { c.Blocks.Rows = 40 }, "blocks"},
		{"bad color", func(c *Config) { c.Blocks.Colors = []string{"red"} }, "blocks.colors"},
		{"no colors", func(c *Config) { c.Blocks.Colors = nil }, "blocks.colors"},
		{"drop chance", func(c *Config) { c.Sweep.DropChance = 1.5 }, "sweep.drop_chance"},
		{"helper lifetime", func(c *Config) { c.Sweep.HelperLifetime = time.Millisecond }, "sweep.helper_lifetime"},
		{"lives", func(c *Config) { c.PowerUp.Lives = 0 }, "powerup.lives"},
		{"extend factor", func(c *Config) { c.PowerUp.ExtendFactor = 0.5 }, "powerup.extend_factor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.edit(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			ve := err.(*ValidationError)
			if ve.Field != tt.field {
				t.Fatalf("field: got %q want %q", ve.Field, tt.field)
			}
		})
	}
}
