// Package config loads and validates the game configuration.
package config

import (
	"time"
)

// Variant selects which item set and life rules a game uses.
type Variant string

const (
	// VariantSweep drops bombs and sweeping helpers; one ball, one life.
	VariantSweep Variant = "sweep"
	// VariantPowerUp drops paddle-extend, extra-life and extra-ball items.
	VariantPowerUp Variant = "powerup"
)

func (v Variant) Valid() bool {
	return v == VariantSweep || v == VariantPowerUp
}

type Config struct {
	Variant Variant       `yaml:"variant"`
	FPS     int           `yaml:"fps"`
	Screen  ScreenConfig  `yaml:"screen"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Ball    BallConfig    `yaml:"ball"`
	Blocks  BlocksConfig  `yaml:"blocks"`
	Items   ItemsConfig   `yaml:"items"`
	Sweep   SweepConfig   `yaml:"sweep"`
	PowerUp PowerUpConfig `yaml:"powerup"`
}

// ScreenConfig is the logical playfield size in pixels.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PaddleConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	BottomMargin int     `yaml:"bottom_margin"`
	Speed        float64 `yaml:"speed"` // px per frame
}

type BallConfig struct {
	Radius             int     `yaml:"radius"`
	Speed              float64 `yaml:"speed"`                // px per frame
	ServeOffset        int     `yaml:"serve_offset"`         // distance of the ball's top above the screen bottom minus paddle height
	MinHorizontalSpeed float64 `yaml:"min_horizontal_speed"` // floor for |vx| after a paddle bounce
}

type BlocksConfig struct {
	Rows   int      `yaml:"rows"`
	Cols   int      `yaml:"cols"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Gap    int      `yaml:"gap"`
	Left   int      `yaml:"left"`
	Top    int      `yaml:"top"`
	Colors []string `yaml:"colors"` // cycled per row
	Points int      `yaml:"points"`
}

type ItemsConfig struct {
	Size      int     `yaml:"size"`
	FallSpeed float64 `yaml:"fall_speed"`
}

type SweepConfig struct {
	DropChance     float64       `yaml:"drop_chance"`
	HelperSize     int           `yaml:"helper_size"`
	HelperSpeed    float64       `yaml:"helper_speed"`
	HelperLifetime time.Duration `yaml:"helper_lifetime"`
	HelperSprite   string        `yaml:"helper_sprite"`
	HelperColor    string        `yaml:"helper_color"` // placeholder when the sprite is unavailable
}

type PowerUpConfig struct {
	DropChance     float64       `yaml:"drop_chance"`
	Lives          int           `yaml:"lives"`
	ExtendFactor   float64       `yaml:"extend_factor"`
	ExtendDuration time.Duration `yaml:"extend_duration"`
}

// Ticks converts a wall-clock duration into whole simulation frames.
func (c Config) Ticks(d time.Duration) int64 {
	if c.FPS <= 0 || d <= 0 {
		return 0
	}
	return int64(d) * int64(c.FPS) / int64(time.Second)
}

// Lives returns the number of lives a fresh game starts with.
func (c Config) Lives() int {
	if c.Variant == VariantPowerUp {
		return c.PowerUp.Lives
	}
	return 1
}

// DropChance returns the item drop probability for the active variant.
func (c Config) DropChance() float64 {
	if c.Variant == VariantPowerUp {
		return c.PowerUp.DropChance
	}
	return c.Sweep.DropChance
}
