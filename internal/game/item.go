package game

import (
	"github.com/fchimpan/block-breaker/internal/config"
)

type ItemKind int

const (
	ItemBomb   ItemKind = iota // destroys the blocks around a random target
	ItemHelper                 // sweeps the top row from right to left
	ItemExtend                 // widens the paddle for a while
	ItemLife                   // one extra life
	ItemBall                   // one extra ball
)

func (k ItemKind) String() string {
	switch k {
	case ItemBomb:
		return "bomb"
	case ItemHelper:
		return "helper"
	case ItemExtend:
		return "extend"
	case ItemLife:
		return "life"
	case ItemBall:
		return "ball"
	default:
		return "unknown"
	}
}

// Glyph is the single character used to draw a falling item.
func (k ItemKind) Glyph() rune {
	switch k {
	case ItemBomb:
		return 'B'
	case ItemHelper:
		return 'H'
	case ItemExtend:
		return 'E'
	case ItemLife:
		return 'L'
	case ItemBall:
		return 'O'
	default:
		return '?'
	}
}

// dropKinds lists the item kinds a variant can drop, picked uniformly.
var dropKinds = map[config.Variant][]ItemKind{
	config.VariantSweep:   {ItemBomb, ItemHelper},
	config.VariantPowerUp: {ItemExtend, ItemLife, ItemBall},
}

// Item is a pickup. Inactive items fall toward the paddle; an active item
// (only helpers become active) is running its effect for Life more frames.
type Item struct {
	Kind   ItemKind
	Rect   Rect
	Active bool
	Life   int64

	// Sweep state, used while an active helper crosses the field.
	VX   float64
	RowY float64
}

func newItem(kind ItemKind, cx, cy, size float64) Item {
	return Item{
		Kind: kind,
		Rect: centered(cx, cy, size, size),
		RowY: cy,
	}
}
