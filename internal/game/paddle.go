package game

import (
	"github.com/fchimpan/block-breaker/internal/config"
)

// noExtension marks a paddle without an active extend effect.
const noExtension = -1

type Paddle struct {
	Rect  Rect
	BaseW float64
	Speed float64

	// ExtendedAt is the tick the extend effect was (re)applied, or -1.
	ExtendedAt int64
}

func newPaddle(cfg config.Config) Paddle {
	w := float64(cfg.Paddle.Width)
	h := float64(cfg.Paddle.Height)
	return Paddle{
		Rect: Rect{
			X: (float64(cfg.Screen.Width) - w) / 2,
			Y: float64(cfg.Screen.Height) - h - float64(cfg.Paddle.BottomMargin),
			W: w,
			H: h,
		},
		BaseW:      w,
		Speed:      cfg.Paddle.Speed,
		ExtendedAt: noExtension,
	}
}

// Move shifts the paddle by dir*Speed and keeps it within [0, width].
func (p *Paddle) Move(dir int, width float64) {
	if dir < 0 {
		p.Rect.X -= p.Speed
	} else if dir > 0 {
		p.Rect.X += p.Speed
	}
	p.clamp(width)
}

func (p *Paddle) Extended() bool {
	return p.ExtendedAt != noExtension
}

// Extend widens the paddle around its centre and records the activation tick.
// Extending an extended paddle only refreshes the tick.
func (p *Paddle) Extend(factor, width float64, tick int64) {
	p.resize(p.BaseW*factor, width)
	p.ExtendedAt = tick
}

// Restore returns the paddle to its base width.
func (p *Paddle) Restore(width float64) {
	p.resize(p.BaseW, width)
	p.ExtendedAt = noExtension
}

func (p *Paddle) resize(w, width float64) {
	cx := p.Rect.CenterX()
	p.Rect.W = min(w, width)
	p.Rect.SetCenterX(cx)
	p.clamp(width)
}

func (p *Paddle) clamp(width float64) {
	if p.Rect.X < 0 {
		p.Rect.X = 0
	}
	if p.Rect.Right() > width {
		p.Rect.SetRight(width)
	}
}
