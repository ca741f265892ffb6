package game

// DeathCause records why a session ended.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseWall
	CauseSelf
	CauseGridFull
)

func (c DeathCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseGridFull:
		return "grid_full"
	default:
		return "unknown"
	}
}

// Collide classifies a proposed head against the board edges and the
// pre-advance body. The tail cell counts as occupied even though it would be
// vacated on the same tick, so a snake can never step into its own tail.
// Wall hits take precedence over self hits.
func Collide(head Cell, body []Cell, rows, cols int) DeathCause {
	if !head.InBounds(rows, cols) {
		return CauseWall
	}
	for _, b := range body {
		if b == head {
			return CauseSelf
		}
	}
	return CauseNone
}

// IsFatal reports whether moving the head to head ends the game.
func IsFatal(head Cell, body []Cell, rows, cols int) bool {
	return Collide(head, body, rows, cols) != CauseNone
}
