package game

import (
	"math"
)

// effect is the behaviour of one item kind.
//
// collect runs when a falling item touches the paddle and reports whether the
// item stays in play (as an active item). update advances an active item each
// frame and reports whether it is still alive; kinds that resolve instantly
// leave it nil.
type effect struct {
	collect func(s *State, it *Item) bool
	update  func(s *State, it *Item) bool
}

var effects = map[ItemKind]effect{
	ItemBomb:   {collect: detonateBomb},
	ItemHelper: {collect: activateHelper, update: sweepHelper},
	ItemExtend: {collect: extendPaddle},
	ItemLife:   {collect: addLife},
	ItemBall:   {collect: addBall},
}

// detonateBomb picks a random remaining block and destroys it together with
// its direct neighbours (every block whose centre is within one grid stride).
func detonateBomb(s *State, _ *Item) bool {
	if len(s.Blocks) == 0 {
		return false
	}
	target := s.Blocks[s.rng.IntN(len(s.Blocks))].Rect
	reachX := float64(s.cfg.Blocks.Width + s.cfg.Blocks.Gap)
	reachY := float64(s.cfg.Blocks.Height + s.cfg.Blocks.Gap)

	var n int
	s.Blocks, n = removeBlocks(s.Blocks, func(b Block) bool {
		return math.Abs(b.Rect.CenterX()-target.CenterX()) <= reachX &&
			math.Abs(b.Rect.CenterY()-target.CenterY()) <= reachY
	})
	s.destroyed(n)
	return false
}

// activateHelper turns the item into a sweeper on the topmost remaining row,
// entering from the right edge.
func activateHelper(s *State, it *Item) bool {
	size := float64(s.cfg.Sweep.HelperSize)
	rowY := it.Rect.CenterY()
	for i, b := range s.Blocks {
		if cy := b.Rect.CenterY(); i == 0 || cy < rowY {
			rowY = cy
		}
	}

	it.Active = true
	it.Life = s.cfg.Ticks(s.cfg.Sweep.HelperLifetime)
	it.VX = -s.cfg.Sweep.HelperSpeed
	it.RowY = rowY
	it.Rect = Rect{W: size, H: size}
	it.Rect.SetCenterY(rowY)
	it.Rect.SetRight(s.Width)
	return true
}

func sweepHelper(s *State, it *Item) bool {
	it.Rect.Move(it.VX, 0)

	band := float64(s.cfg.Blocks.Height) / 2
	var n int
	s.Blocks, n = removeBlocks(s.Blocks, func(b Block) bool {
		return math.Abs(b.Rect.CenterY()-it.RowY) < band &&
			b.Rect.Left() < it.Rect.Right() && b.Rect.Right() > it.Rect.Left()
	})
	s.destroyed(n)

	it.Life--
	return it.Life > 0 && it.Rect.Right() >= 0
}

func extendPaddle(s *State, _ *Item) bool {
	s.Paddle.Extend(s.cfg.PowerUp.ExtendFactor, s.Width, s.Tick)
	return false
}

func addLife(s *State, _ *Item) bool {
	s.Lives++
	return false
}

func addBall(s *State, _ *Item) bool {
	b := s.newBall(s.Paddle.Rect.CenterX(), s.Paddle.Rect.Top())
	s.Balls = append(s.Balls, b)
	return false
}
