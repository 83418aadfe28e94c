package game

import (
	"math"
	"testing"
	"time"

	"github.com/fchimpan/block-breaker/internal/config"
)

// dropOnPaddle places an item of kind so that it reaches the paddle (centre
// x 400, top y 560) on the next frame.
func dropOnPaddle(s *State, kind ItemKind) {
	s.Items = []Item{newItem(kind, 400, 550, float64(s.cfg.Items.Size))}
}

func TestItem_TriggersOnlyOnPaddleContact(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantPowerUp), 1)
	parkBall(&s)

	// Row 3, col 5 sits above the paddle.
	var src Block
	for _, b := range s.Blocks {
		if b.Row == 3 && b.Col == 5 {
			src = b
		}
	}
	s.Items = []Item{newItem(ItemLife, src.Rect.CenterX(), src.Rect.CenterY(), 20)}
	lives := s.Lives

	collected := false
	for i := 0; i < 300 && !collected; i++ {
		next := s.Items[0].Rect
		next.Move(0, s.cfg.Items.FallSpeed)

		events := s.Step(Input{})
		collected = countEvents(events, EventItemCollected) == 1

		if touching := next.Intersects(s.Paddle.Rect); collected != touching {
			t.Fatalf("tick %d: collected=%v but touching=%v (item %+v)", s.Tick, collected, touching, next)
		}
		if !collected && s.Lives != lives {
			t.Fatalf("tick %d: effect applied before the item reached the paddle", s.Tick)
		}
	}
	if !collected {
		t.Fatalf("item never reached the paddle")
	}
	if s.Lives != lives+1 {
		t.Fatalf("lives: got %d want %d", s.Lives, lives+1)
	}
	if len(s.Items) != 0 {
		t.Fatalf("collected item should be removed, got %+v", s.Items)
	}
}

func TestEffect_ExtraLife(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantPowerUp), 1)
	parkBall(&s)
	dropOnPaddle(&s, ItemLife)
	before := s.Lives

	events := s.Step(Input{})
	if countEvents(events, EventItemCollected) != 1 {
		t.Fatalf("expected the life item to be collected, got %+v", events)
	}
	if s.Lives != before+1 {
		t.Fatalf("lives: got %d want %d", s.Lives, before+1)
	}
	if len(s.Items) != 0 {
		t.Fatalf("life item should be consumed, got %+v", s.Items)
	}

	// Every life is a ball the player can lose before the game ends.
	losses := 0
	for s.Phase == PhasePlaying && losses < 10 {
		s.Balls = []Ball{{Rect: Rect{X: 10, Y: 598, W: 20, H: 20}, VX: 0, VY: 5, Speed: 5}}
		s.Step(Input{})
		losses++
	}
	if s.Phase != PhaseGameOver {
		t.Fatalf("phase: got %v want game over", s.Phase)
	}
	if losses != before+1 {
		t.Fatalf("ball losses survived: got %d want %d", losses, before+1)
	}
}

func TestItem_MissedItemFallsAway(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantPowerUp), 1)
	parkBall(&s)
	s.Paddle.Rect.X = 0
	s.Items = []Item{newItem(ItemBall, 700, 150, 20)}

	for i := 0; i < 300; i++ {
		if events := s.Step(Input{}); countEvents(events, EventItemCollected) != 0 {
			t.Fatalf("item should not be collected away from the paddle")
		}
	}
	if len(s.Items) != 0 {
		t.Fatalf("item should leave the field, got %+v", s.Items)
	}
	if len(s.Balls) != 1 {
		t.Fatalf("no ball should be added, got %d", len(s.Balls))
	}
}

func TestItem_DropsAtBlockCentre(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantSweep), 3)
	blk := Block{Rect: Rect{X: 380, Y: 200, W: 75, H: 30}}
	s.Blocks = []Block{blk, {Rect: Rect{X: 20, Y: 30, W: 75, H: 30}}}
	s.Balls = []Ball{{Rect: Rect{X: 390, Y: 232, W: 20, H: 20}, VX: 0, VY: -5, Speed: 5}}

	events := s.Step(Input{})

	if countEvents(events, EventItemDropped) != 1 || len(s.Items) != 1 {
		t.Fatalf("sweep variant always drops, got events %+v items %+v", events, s.Items)
	}
	it := s.Items[0]
	if it.Kind != ItemBomb && it.Kind != ItemHelper {
		t.Fatalf("unexpected kind %v for sweep variant", it.Kind)
	}
	// The drop frame itself also moves the item one fall step.
	if it.Rect.CenterX() != blk.Rect.CenterX() || it.Rect.CenterY() != blk.Rect.CenterY()+s.cfg.Items.FallSpeed {
		t.Fatalf("item not spawned at block centre: %+v", it.Rect)
	}
}

func TestItem_DropKindsFollowVariant(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.VariantPowerUp)
	cfg.PowerUp.DropChance = 1
	s := newTestState(t, cfg, 9)

	seen := map[ItemKind]bool{}
	for i := 0; i < 200; i++ {
		s.maybeDrop(s.Blocks[0])
	}
	for _, it := range s.Items {
		seen[it.Kind] = true
	}
	for _, k := range []ItemKind{ItemExtend, ItemLife, ItemBall} {
		if !seen[k] {
			t.Fatalf("kind %v never dropped", k)
		}
	}
	if seen[ItemBomb] || seen[ItemHelper] {
		t.Fatalf("sweep kinds must not drop in powerup variant: %v", seen)
	}
}

func TestEffect_ExtendRevertsAfterExactDuration(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.VariantPowerUp)
	cfg.PowerUp.ExtendDuration = 500 * time.Millisecond // 30 frames
	s := newTestState(t, cfg, 1)
	parkBall(&s)
	dropOnPaddle(&s, ItemExtend)

	s.Step(Input{})
	if !s.Paddle.Extended() {
		t.Fatalf("paddle should be extended after collecting")
	}
	if s.Paddle.Rect.W != 150 {
		t.Fatalf("extended width: got %v want 150", s.Paddle.Rect.W)
	}
	if s.Paddle.Rect.CenterX() != 400 {
		t.Fatalf("extension should keep the paddle centred, got %v", s.Paddle.Rect.CenterX())
	}
	activated := s.Tick

	duration := cfg.Ticks(cfg.PowerUp.ExtendDuration)
	for s.Tick < activated+duration-1 {
		s.Step(Input{})
		if s.Paddle.Rect.W != 150 {
			t.Fatalf("tick %d: reverted early (activated at %d)", s.Tick, activated)
		}
	}
	if got := s.ExtendRemaining(); got != 1 {
		t.Fatalf("remaining: got %d want 1", got)
	}

	events := s.Step(Input{})
	if s.Tick != activated+duration {
		t.Fatalf("setup: tick %d", s.Tick)
	}
	if s.Paddle.Rect.W != 100 || s.Paddle.Extended() {
		t.Fatalf("tick %d: paddle should be back to 100, got %v", s.Tick, s.Paddle.Rect.W)
	}
	if countEvents(events, EventEffectExpired) != 1 {
		t.Fatalf("expected an expiry event")
	}
}

func TestEffect_ExtendRefreshAndClamp(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.VariantPowerUp)
	s := newTestState(t, cfg, 1)
	parkBall(&s)

	s.Paddle.Rect.SetRight(s.Width)
	s.Paddle.Extend(cfg.PowerUp.ExtendFactor, s.Width, 10)
	if s.Paddle.Rect.Right() != s.Width || s.Paddle.Rect.W != 150 {
		t.Fatalf("extended paddle must stay on screen: %+v", s.Paddle.Rect)
	}
	s.Paddle.Extend(cfg.PowerUp.ExtendFactor, s.Width, 20)
	if s.Paddle.Rect.W != 150 || s.Paddle.ExtendedAt != 20 {
		t.Fatalf("re-extending should refresh the timer only: %+v", s.Paddle)
	}
}

func TestEffect_ExtraBall(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantPowerUp), 1)
	parkBall(&s)
	dropOnPaddle(&s, ItemBall)

	s.Step(Input{})
	if len(s.Balls) != 2 {
		t.Fatalf("balls: got %d want 2", len(s.Balls))
	}
	nb := s.Balls[1]
	if nb.VY >= 0 || nb.Rect.Bottom() > s.Paddle.Rect.Top() {
		t.Fatalf("new ball should start above the paddle heading up: %+v", nb)
	}

	// Losing one of two balls costs no life.
	s.Balls[0].Rect.Y = 700
	s.Step(Input{})
	if len(s.Balls) != 1 || s.Lives != 3 || s.Phase != PhasePlaying {
		t.Fatalf("balls=%d lives=%d phase=%v", len(s.Balls), s.Lives, s.Phase)
	}
}

func TestEffect_BombDestroysTargetNeighbourhood(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 5; seed++ {
		s := newTestState(t, testConfig(config.VariantSweep), seed)
		parkBall(&s)
		before := append([]Block(nil), s.Blocks...)
		dropOnPaddle(&s, ItemBomb)

		events := s.Step(Input{})
		if countEvents(events, EventItemCollected) != 1 {
			t.Fatalf("seed %d: bomb not collected", seed)
		}
		if len(s.Items) != 0 {
			t.Fatalf("seed %d: bomb should be consumed", seed)
		}

		left := map[Block]bool{}
		for _, b := range s.Blocks {
			left[b] = true
		}
		removed := map[Block]bool{}
		for _, b := range before {
			if !left[b] {
				removed[b] = true
			}
		}
		if len(removed) < 4 || len(removed) > 9 {
			t.Fatalf("seed %d: bomb removed %d blocks", seed, len(removed))
		}
		if s.Score != len(removed)*10 {
			t.Fatalf("seed %d: score %d for %d blocks", seed, s.Score, len(removed))
		}

		near := func(a, b Block) bool {
			return math.Abs(a.Rect.CenterX()-b.Rect.CenterX()) <= 80 &&
				math.Abs(a.Rect.CenterY()-b.Rect.CenterY()) <= 35
		}
		found := false
		for target := range removed {
			match := true
			for _, b := range before {
				if near(b, target) != removed[b] {
					match = false
					break
				}
			}
			if match {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("seed %d: removed blocks are not one target's neighbourhood", seed)
		}
	}
}

func TestEffect_HelperSweepsTopRow(t *testing.T) {
	t.Parallel()

	s := newTestState(t, testConfig(config.VariantSweep), 1)
	parkBall(&s)
	dropOnPaddle(&s, ItemHelper)

	s.Step(Input{})
	if len(s.Items) != 1 || !s.Items[0].Active {
		t.Fatalf("helper should be active, got %+v", s.Items)
	}
	h := s.Items[0]
	if h.Rect.Right() != s.Width || h.RowY != 45 || h.Rect.CenterY() != 45 || h.Rect.W != 50 {
		t.Fatalf("helper should enter the top row from the right: %+v", h)
	}
	if h.Life != 200 {
		t.Fatalf("life: got %d want 200", h.Life)
	}

	expired := false
	for i := 0; i < 400 && len(s.Items) > 0; i++ {
		events := s.Step(Input{})
		if countEvents(events, EventEffectExpired) > 0 {
			expired = true
		}
	}
	if len(s.Items) != 0 || !expired {
		t.Fatalf("helper should expire, items=%+v expired=%v", s.Items, expired)
	}
	for _, b := range s.Blocks {
		if b.Row == 0 {
			t.Fatalf("top row block survived the sweep: %+v", b)
		}
	}
	if len(s.Blocks) != 30 {
		t.Fatalf("only the top row should be swept, %d blocks left", len(s.Blocks))
	}
	if s.Score != 100 {
		t.Fatalf("score: got %d want 100", s.Score)
	}
}

func TestEffect_HelperExpiresByLifetime(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.VariantSweep)
	cfg.Sweep.HelperLifetime = 100 * time.Millisecond // 6 frames
	s := newTestState(t, cfg, 1)
	parkBall(&s)
	dropOnPaddle(&s, ItemHelper)
	s.Step(Input{})

	for i := 0; i < 5; i++ {
		s.Step(Input{})
		if len(s.Items) != 1 {
			t.Fatalf("helper gone after %d sweep frames", i+1)
		}
	}
	s.Step(Input{})
	if len(s.Items) != 0 {
		t.Fatalf("helper should expire after its lifetime")
	}
	if n := len(s.Blocks); n >= 40 || n < 30 {
		t.Fatalf("a short sweep should clear only the right end of the top row, %d blocks left", n)
	}
}

func TestEffectsTableCoversEveryDroppableKind(t *testing.T) {
	t.Parallel()

	for variant, kinds := range dropKinds {
		for _, k := range kinds {
			e, ok := effects[k]
			if !ok || e.collect == nil {
				t.Fatalf("%s: no collect effect for %v", variant, k)
			}
		}
	}
}
