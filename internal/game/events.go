package game

type EventKind int

const (
	EventBlockHit EventKind = iota
	EventItemDropped
	EventItemCollected
	EventEffectExpired
	EventLifeLost
	EventGameOver
	EventGameClear
)

func (k EventKind) String() string {
	switch k {
	case EventBlockHit:
		return "block hit"
	case EventItemDropped:
		return "item dropped"
	case EventItemCollected:
		return "item collected"
	case EventEffectExpired:
		return "effect expired"
	case EventLifeLost:
		return "life lost"
	case EventGameOver:
		return "game over"
	case EventGameClear:
		return "game clear"
	default:
		return "unknown"
	}
}

// Event is something notable that happened during a Step. Item is only
// meaningful for item and effect events.
type Event struct {
	Kind EventKind
	Item ItemKind
	Tick int64
}
