package game

// Snake is the ordered body of the creature, head at index 0, tail last.
// It performs no bounds or self-overlap checks; see Collide for those rules.
type Snake struct {
	body []Cell
}

// NewSnake creates a snake from an explicit body (head first). The slice is copied.
func NewSnake(body ...Cell) *Snake {
	s := &Snake{body: make([]Cell, len(body))}
	copy(s.body, body)
	return s
}

// Head returns the head cell. The snake is never empty once constructed by the engine.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Tail returns the last cell.
func (s *Snake) Tail() Cell {
	return s.body[len(s.body)-1]
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Contains reports whether c is part of the body.
func (s *Snake) Contains(c Cell) bool {
	for _, b := range s.body {
		if b == c {
			return true
		}
	}
	return false
}

// Occupied returns the body as a set.
func (s *Snake) Occupied() map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(s.body))
	for _, b := range s.body {
		set[b] = struct{}{}
	}
	return set
}

// ProposeHead returns the head offset by one step in d.
func (s *Snake) ProposeHead(d Direction) Cell {
	dr, dc := d.Delta()
	return s.Head().Add(dr, dc)
}

// Advance prepends head and, unless grow is set, drops the tail.
// It returns a copy of the resulting body.
func (s *Snake) Advance(head Cell, grow bool) []Cell {
	next := make([]Cell, 0, len(s.body)+1)
	next = append(next, head)
	if grow {
		next = append(next, s.body...)
	} else {
		next = append(next, s.body[:len(s.body)-1]...)
	}
	s.body = next
	return s.Cells()
}
