package game

import (
	"math/rand/v2"

	"github.com/fchimpan/block-breaker/internal/config"
	"github.com/fchimpan/block-breaker/internal/layout"
)

type Input struct {
	Move int // -1 left, 0 none, +1 right
}

type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseClear
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	case PhaseClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended and only a restart can continue it.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseClear
}

type State struct {
	Variant config.Variant
	Width   float64
	Height  float64

	Paddle Paddle
	Balls  []Ball
	Blocks []Block
	Items  []Item

	Score       int
	Lives       int
	BlocksTotal int
	Tick        int64
	Phase       Phase

	cfg    config.Config
	grid   layout.BlockGrid
	rng    *rand.Rand
	events []Event
}

func NewState(cfg config.Config, grid layout.BlockGrid, seed uint64) State {
	blocks := blocksFromGrid(grid)
	s := State{
		Variant: cfg.Variant,
		Width:   float64(cfg.Screen.Width),
		Height:  float64(cfg.Screen.Height),

		Paddle: newPaddle(cfg),
		Blocks: blocks,

		Lives:       cfg.Lives(),
		BlocksTotal: len(blocks),

		cfg:  cfg,
		grid: grid,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.Balls = []Ball{s.serve()}
	if len(s.Blocks) == 0 {
		s.Phase = PhaseClear
	}
	return s
}

// Restart resets every entity to the initial layout. It only acts in a
// terminal phase and reports whether it did.
func (s *State) Restart(seed uint64) bool {
	if !s.Phase.Terminal() {
		return false
	}
	*s = NewState(s.cfg, s.grid, seed)
	return true
}

// serve places a fresh ball at the standard serve position above the paddle.
func (s *State) serve() Ball {
	top := s.Height - float64(s.cfg.Paddle.Height) - float64(s.cfg.Ball.ServeOffset)
	d := float64(2 * s.cfg.Ball.Radius)
	return s.newBall(s.Width/2, top+d)
}

// newBall creates a ball centred on x with its bottom at y, heading up and to
// a random side at full speed.
func (s *State) newBall(x, y float64) Ball {
	d := float64(2 * s.cfg.Ball.Radius)
	speed := s.cfg.Ball.Speed
	vx := speed
	if s.rng.IntN(2) == 0 {
		vx = -speed
	}
	return Ball{
		Rect:  Rect{X: x - d/2, Y: y - d, W: d, H: d},
		VX:    vx,
		VY:    -speed,
		Speed: speed,
	}
}

// Step advances the simulation by one frame and returns the events it
// produced. The returned slice is reused by the next call.
func (s *State) Step(in Input) []Event {
	if s.Phase.Terminal() {
		return nil
	}
	s.events = s.events[:0]
	s.Tick++

	s.Paddle.Move(in.Move, s.Width)
	s.expireEffects()

	for i := range s.Balls {
		s.stepBall(&s.Balls[i])
	}
	s.stepItems()

	alive := s.Balls[:0]
	for _, b := range s.Balls {
		if !b.Lost(s.Height) {
			alive = append(alive, b)
		}
	}
	s.Balls = alive

	switch {
	case len(s.Blocks) == 0:
		s.Phase = PhaseClear
		s.emit(EventGameClear, 0)
	case len(s.Balls) == 0:
		s.loseLife()
	}
	return s.events
}

func (s *State) stepBall(b *Ball) {
	b.move(s.Width)
	b.bouncePaddle(s.Paddle, s.cfg.Ball.MinHorizontalSpeed)

	i := b.hitBlock(s.Blocks)
	if i < 0 {
		return
	}
	hit := s.Blocks[i]
	s.Blocks = append(s.Blocks[:i], s.Blocks[i+1:]...)
	b.VY = -b.VY
	s.destroyed(1)
	s.emit(EventBlockHit, 0)
	s.maybeDrop(hit)
}

// maybeDrop rolls for an item at the centre of a block the ball destroyed.
func (s *State) maybeDrop(b Block) {
	kinds := dropKinds[s.Variant]
	if len(kinds) == 0 || s.rng.Float64() >= s.cfg.DropChance() {
		return
	}
	kind := kinds[s.rng.IntN(len(kinds))]
	size := float64(s.cfg.Items.Size)
	s.Items = append(s.Items, newItem(kind, b.Rect.CenterX(), b.Rect.CenterY(), size))
	s.emit(EventItemDropped, kind)
}

func (s *State) stepItems() {
	out := s.Items[:0]
	for i := range s.Items {
		it := s.Items[i]
		if s.stepItem(&it) {
			out = append(out, it)
		}
	}
	s.Items = out
}

// stepItem advances one item and reports whether it stays in play.
func (s *State) stepItem(it *Item) bool {
	e, ok := effects[it.Kind]
	if !ok {
		return false
	}
	if it.Active {
		if e.update != nil && e.update(s, it) {
			return true
		}
		s.emit(EventEffectExpired, it.Kind)
		return false
	}

	it.Rect.Move(0, s.cfg.Items.FallSpeed)
	if it.Rect.Intersects(s.Paddle.Rect) {
		s.emit(EventItemCollected, it.Kind)
		return e.collect(s, it)
	}
	return it.Rect.Top() <= s.Height
}

// expireEffects reverts timed effects whose duration has elapsed.
func (s *State) expireEffects() {
	if !s.Paddle.Extended() {
		return
	}
	if s.Tick-s.Paddle.ExtendedAt >= s.cfg.Ticks(s.cfg.PowerUp.ExtendDuration) {
		s.Paddle.Restore(s.Width)
		s.emit(EventEffectExpired, ItemExtend)
	}
}

// ExtendRemaining returns how many frames the paddle stays extended, or 0.
func (s *State) ExtendRemaining() int64 {
	if !s.Paddle.Extended() {
		return 0
	}
	left := s.cfg.Ticks(s.cfg.PowerUp.ExtendDuration) - (s.Tick - s.Paddle.ExtendedAt)
	return max(left, 0)
}

func (s *State) loseLife() {
	s.Lives--
	s.emit(EventLifeLost, 0)
	if s.Lives <= 0 {
		s.Lives = 0
		s.Phase = PhaseGameOver
		s.emit(EventGameOver, 0)
		return
	}
	s.Paddle = newPaddle(s.cfg)
	s.Balls = append(s.Balls, s.serve())
}

func (s *State) destroyed(n int) {
	s.Score += n * s.cfg.Blocks.Points
}

func (s *State) emit(kind EventKind, item ItemKind) {
	s.events = append(s.events, Event{Kind: kind, Item: item, Tick: s.Tick})
}
