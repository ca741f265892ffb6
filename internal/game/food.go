package game

import (
	"errors"
	"math/rand"
)

// ErrGridFull is returned when every cell on the board is occupied.
var ErrGridFull = errors.New("grid full: no free cell for food")

// minFoodRetries is the floor on rejection-sampling attempts for tiny boards.
const minFoodRetries = 64

// FoodPlacer picks a random unoccupied cell for the next food item.
type FoodPlacer struct {
	rng        *rand.Rand
	maxRetries int // 0 = derive from board size
}

// NewFoodPlacer creates a placer drawing from rng. maxRetries <= 0 selects
// rows*cols*4 attempts (at least minFoodRetries) per placement.
func NewFoodPlacer(rng *rand.Rand, maxRetries int) *FoodPlacer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &FoodPlacer{rng: rng, maxRetries: maxRetries}
}

// Place returns a uniformly random cell of the rows x cols board that is not
// in occupied. Sampling is retried up to the retry budget; after that the free
// cells are enumerated and one is chosen uniformly. ErrGridFull is returned
// only when no free cell exists.
func (fp *FoodPlacer) Place(occupied map[Cell]struct{}, rows, cols int) (Cell, error) {
	if rows <= 0 || cols <= 0 {
		return Cell{}, ErrInvalidGeometry
	}
	if len(occupied) < rows*cols {
		retries := fp.retryBudget(rows, cols)
		for i := 0; i < retries; i++ {
			c := Cell{Row: fp.rng.Intn(rows), Col: fp.rng.Intn(cols)}
			if _, taken := occupied[c]; !taken {
				return c, nil
			}
		}
	}

	free := freeCells(occupied, rows, cols)
	if len(free) == 0 {
		return Cell{}, ErrGridFull
	}
	return free[fp.rng.Intn(len(free))], nil
}

func (fp *FoodPlacer) retryBudget(rows, cols int) int {
	if fp.maxRetries > 0 {
		return fp.maxRetries
	}
	return max(rows*cols*4, minFoodRetries)
}

// freeCells lists every board cell not in occupied, in row-major order.
func freeCells(occupied map[Cell]struct{}, rows, cols int) []Cell {
	out := make([]Cell, 0, max(rows*cols-len(occupied), 0))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := Cell{Row: r, Col: c}
			if _, taken := occupied[cell]; !taken {
				out = append(out, cell)
			}
		}
	}
	return out
}
