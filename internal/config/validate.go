package config

import (
	"regexp"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that the configuration describes a playable field.
func (c Config) Validate() error {
	if !c.Variant.Valid() {
		return invalid("variant", "must be %q or %q, got %q", VariantSweep, VariantPowerUp, c.Variant)
	}
	if c.FPS < 10 || c.FPS > 240 {
		return invalid("fps", "must be between 10 and 240, got %d", c.FPS)
	}
	if c.Screen.Width < 100 || c.Screen.Height < 100 {
		return invalid("screen", "must be at least 100x100, got %dx%d", c.Screen.Width, c.Screen.Height)
	}

	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		return invalid("paddle", "width and height must be > 0")
	}
	if c.Paddle.Width >= c.Screen.Width {
		return invalid("paddle.width", "must be smaller than screen.width")
	}
	if c.Paddle.Speed <= 0 {
		return invalid("paddle.speed", "must be > 0")
	}
	if c.Paddle.BottomMargin < 0 || c.Paddle.BottomMargin+c.Paddle.Height >= c.Screen.Height {
		return invalid("paddle.bottom_margin", "must keep the paddle on screen")
	}

	if c.Ball.Radius <= 0 {
		return invalid("ball.radius", "must be > 0")
	}
	if c.Ball.Speed <= 0 {
		return invalid("ball.speed", "must be > 0")
	}
	if c.Ball.MinHorizontalSpeed <= 0 || c.Ball.MinHorizontalSpeed > c.Ball.Speed {
		return invalid("ball.min_horizontal_speed", "must be > 0 and at most ball.speed")
	}

	b := c.Blocks
	if b.Rows <= 0 || b.Cols <= 0 {
		return invalid("blocks", "rows and cols must be > 0")
	}
	if b.Width <= 0 || b.Height <= 0 || b.Gap < 0 {
		return invalid("blocks", "width and height must be > 0 and gap >= 0")
	}
	if b.Left < 0 || b.Left+b.Width/2 >= c.Screen.Width {
		return invalid("blocks.left", "must leave room for at least one column")
	}
	if b.Top < 0 || b.Top+b.Rows*(b.Height+b.Gap) >= c.Screen.Height-c.Paddle.BottomMargin-c.Paddle.Height {
		return invalid("blocks", "grid overlaps the paddle area")
	}
	if len(b.Colors) == 0 {
		return invalid("blocks.colors", "must not be empty")
	}
	for _, col := range b.Colors {
		if !hexColor.MatchString(col) {
			return invalid("blocks.colors", "%q is not a #rrggbb color", col)
		}
	}
	if b.Points < 0 {
		return invalid("blocks.points", "must be >= 0")
	}

	if c.Items.Size <= 0 {
		return invalid("items.size", "must be > 0")
	}
	if c.Items.FallSpeed <= 0 {
		return invalid("items.fall_speed", "must be > 0")
	}

	if err := chance("sweep.drop_chance", c.Sweep.DropChance); err != nil {
		return err
	}
	if c.Sweep.HelperSize <= 0 || c.Sweep.HelperSpeed <= 0 {
		return invalid("sweep", "helper_size and helper_speed must be > 0")
	}
	if c.Ticks(c.Sweep.HelperLifetime) <= 0 {
		return invalid("sweep.helper_lifetime", "must last at least one frame")
	}
	if !hexColor.MatchString(c.Sweep.HelperColor) {
		return invalid("sweep.helper_color", "%q is not a #rrggbb color", c.Sweep.HelperColor)
	}

	if err := chance("powerup.drop_chance", c.PowerUp.DropChance); err != nil {
		return err
	}
	if c.PowerUp.Lives < 1 {
		return invalid("powerup.lives", "must be >= 1")
	}
	if c.PowerUp.ExtendFactor < 1 {
		return invalid("powerup.extend_factor", "must be >= 1")
	}
	if c.Ticks(c.PowerUp.ExtendDuration) <= 0 {
		return invalid("powerup.extend_duration", "must last at least one frame")
	}
	return nil
}

func chance(field string, p float64) error {
	if p < 0 || p > 1 {
		return invalid(field, "must be between 0 and 1, got %v", p)
	}
	return nil
}
