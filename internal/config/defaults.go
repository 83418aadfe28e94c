package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breaker.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors defaults/breaker.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Variant: VariantSweep,
		FPS:     60,
		Screen: ScreenConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       20,
			BottomMargin: 20,
			Speed:        10,
		},
		Ball: BallConfig{
			Radius:             10,
			Speed:              5,
			ServeOffset:        50,
			MinHorizontalSpeed: 1,
		},
		Blocks: BlocksConfig{
			Rows:   4,
			Cols:   10,
			Width:  75,
			Height: 30,
			Gap:    5,
			Left:   20,
			Top:    30,
			Colors: []string{"#ff0000", "#ffff00", "#00ff00", "#0000ff"},
			Points: 10,
		},
		Items: ItemsConfig{
			Size:      20,
			FallSpeed: 3,
		},
		Sweep: SweepConfig{
			DropChance:     1.0,
			HelperSize:     50,
			HelperSpeed:    7,
			HelperLifetime: 3334 * time.Millisecond, // 200 frames at 60fps
			HelperSprite:   "koukaton.jpg",
			HelperColor:    "#c800c8",
		},
		PowerUp: PowerUpConfig{
			DropChance:     0.3,
			Lives:          3,
			ExtendFactor:   1.5,
			ExtendDuration: 10 * time.Second,
		},
	}
}
