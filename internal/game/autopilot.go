package game

// AutoPilot is a greedy controller: it closes the row gap to the food first
// (Up/Down), then the column gap (Left/Right). It is pulled once per tick by
// the driver and never searches for a safe path, so a long snake will
// eventually run into itself.
type AutoPilot struct{}

// Next returns the direction to request for the coming tick, or false when
// there is nothing to do (game over, or the head already sits on the food).
func (AutoPilot) Next(s Snapshot) (Direction, bool) {
	if s.Over() || len(s.Snake) == 0 {
		return Up, false
	}
	head := s.Head()
	dr := s.Food.Row - head.Row
	dc := s.Food.Col - head.Col
	switch {
	case dr < 0:
		return Up, true
	case dr > 0:
		return Down, true
	case dc < 0:
		return Left, true
	case dc > 0:
		return Right, true
	}
	return Up, false
}

// Plan lists the cells the greedy route visits from the head to the food,
// excluding the head itself. Renderers use it to draw the pilot's intent.
func (AutoPilot) Plan(s Snapshot) []Cell {
	if s.Over() || len(s.Snake) == 0 {
		return nil
	}
	cur := s.Head()
	out := make([]Cell, 0, cur.Manhattan(s.Food))
	for cur.Row != s.Food.Row {
		if s.Food.Row < cur.Row {
			cur = cur.Add(-1, 0)
		} else {
			cur = cur.Add(1, 0)
		}
		out = append(out, cur)
	}
	for cur.Col != s.Food.Col {
		if s.Food.Col < cur.Col {
			cur = cur.Add(0, -1)
		} else {
			cur = cur.Add(0, 1)
		}
		out = append(out, cur)
	}
	return out
}
