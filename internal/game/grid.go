package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGeometry is returned when the viewport cannot hold a single cell.
var ErrInvalidGeometry = errors.New("invalid grid geometry")

// Cell is a board coordinate. Row grows downwards, Col grows rightwards.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add offsets the cell by (dr, dc).
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// InBounds reports whether c lies on a rows x cols board.
func (c Cell) InBounds(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// Manhattan returns |dRow| + |dCol| between two cells.
func (c Cell) Manhattan(o Cell) int {
	return absInt(c.Row-o.Row) + absInt(c.Col-o.Col)
}

// --- Direction ---

// Direction is one of the four headings a snake can travel in.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	directionCount // sentinel
)

// AllDirections lists the headings in declaration order.
var AllDirections = [directionCount]Direction{Up, Down, Left, Right}

// Delta returns the (row, col) step for one move in d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the 180° reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d < directionCount
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up"/"down"/"left"/"right" (any case) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, true
	case "down", "d":
		return Down, true
	case "left", "l":
		return Left, true
	case "right", "r":
		return Right, true
	}
	return Up, false
}

// --- Geometry ---

// GridSize derives a square board from the available viewport.
// rows = cols = floor(min(width, height) / cellSize).
func GridSize(width, height, cellSize int) (rows, cols int, err error) {
	if cellSize <= 0 {
		return 0, 0, fmt.Errorf("cell size %d: %w", cellSize, ErrInvalidGeometry)
	}
	side := min(width, height) / cellSize
	if side < 1 {
		return 0, 0, fmt.Errorf("viewport %dx%d with cell %d: %w", width, height, cellSize, ErrInvalidGeometry)
	}
	return side, side, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
