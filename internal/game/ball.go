package game

import (
	"math"
)

type Ball struct {
	Rect   Rect
	VX, VY float64
	Speed  float64
}

// move integrates one frame and resolves wall contacts. After a reflection the
// ball is clamped so it never leaves [0, width] horizontally or crosses the top.
func (b *Ball) move(width float64) {
	b.Rect.Move(b.VX, b.VY)

	if b.Rect.Top() < 0 {
		b.VY = math.Abs(b.VY)
		b.Rect.Y = 0
	}
	if b.Rect.Left() < 0 {
		b.VX = math.Abs(b.VX)
		b.Rect.X = 0
	} else if b.Rect.Right() > width {
		b.VX = -math.Abs(b.VX)
		b.Rect.SetRight(width)
	}
}

// bouncePaddle reflects the ball upward off p when they overlap.
//
// The new horizontal velocity maps the hit offset from the paddle centre
// linearly onto [-Speed, Speed]; |vx| is floored at minVX so the ball cannot
// settle into a purely vertical bounce.
func (b *Ball) bouncePaddle(p Paddle, minVX float64) bool {
	if !b.Rect.Intersects(p.Rect) {
		return false
	}
	b.VY = -math.Abs(b.VY)
	b.Rect.SetBottom(p.Rect.Top())

	half := p.Rect.W / 2
	rel := 0.0
	if half > 0 {
		rel = (b.Rect.CenterX() - p.Rect.CenterX()) / half
	}
	rel = max(-1, min(1, rel))
	b.VX = rel * b.Speed
	if math.Abs(b.VX) < minVX {
		if b.VX >= 0 {
			b.VX = minVX
		} else {
			b.VX = -minVX
		}
	}
	return true
}

// hitBlock finds the first block in list order that overlaps the ball.
// It returns -1 when there is none.
func (b *Ball) hitBlock(blocks []Block) int {
	for i := range blocks {
		if b.Rect.Intersects(blocks[i].Rect) {
			return i
		}
	}
	return -1
}

// Lost reports whether the ball has dropped below the bottom bound.
func (b *Ball) Lost(height float64) bool {
	return b.Rect.Top() > height
}
