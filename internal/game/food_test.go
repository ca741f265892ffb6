package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestFoodPlacer_NeverOnOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test
	fp := NewFoodPlacer(rng, 0)
	for trial := 0; trial < 500; trial++ {
		rows, cols := 1+rng.Intn(8), 1+rng.Intn(8)
		occ := map[Cell]struct{}{}
		n := rng.Intn(rows * cols) // leave at least one cell free
		for len(occ) < n {
			occ[Cell{rng.Intn(rows), rng.Intn(cols)}] = struct{}{}
		}
		c, err := fp.Place(occ, rows, cols)
		if err != nil {
			t.Fatalf("trial %d: %dx%d with %d occupied: %v", trial, rows, cols, n, err)
		}
		if !c.InBounds(rows, cols) {
			t.Fatalf("trial %d: %s outside %dx%d", trial, c, rows, cols)
		}
		if _, taken := occ[c]; taken {
			t.Fatalf("trial %d: food placed on occupied cell %s", trial, c)
		}
	}
}

func TestFoodPlacer_FindsLastFreeCellAfterRetries(t *testing.T) {
	occ := map[Cell]struct{}{}
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if r == 7 && c == 3 {
				continue
			}
			occ[Cell{r, c}] = struct{}{}
		}
	}
	// One retry is almost certain to miss; the scan fallback must still find it.
	fp := NewFoodPlacer(rand.New(rand.NewSource(1)), 1) // #nosec G404 -- test
	for i := 0; i < 20; i++ {
		c, err := fp.Place(occ, 10, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != (Cell{7, 3}) {
			t.Fatalf("placed at %s, want (7,3)", c)
		}
	}
}

func TestFoodPlacer_GridFull(t *testing.T) {
	occ := map[Cell]struct{}{{0, 0}: {}, {0, 1}: {}, {1, 0}: {}, {1, 1}: {}}
	fp := NewFoodPlacer(rand.New(rand.NewSource(1)), 0) // #nosec G404 -- test
	if _, err := fp.Place(occ, 2, 2); !errors.Is(err, ErrGridFull) {
		t.Fatalf("expected ErrGridFull, got %v", err)
	}
}

func TestFoodPlacer_InvalidGeometry(t *testing.T) {
	fp := NewFoodPlacer(rand.New(rand.NewSource(1)), 0) // #nosec G404 -- test
	if _, err := fp.Place(nil, 0, 4); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestFoodPlacer_CoversWholeBoard(t *testing.T) {
	fp := NewFoodPlacer(rand.New(rand.NewSource(3)), 0) // #nosec G404 -- test
	seen := map[Cell]bool{}
	for i := 0; i < 2000; i++ {
		c, err := fp.Place(nil, 3, 3)
		if err != nil {
			t.Fatal(err)
		}
		seen[c] = true
	}
	if len(seen) != 9 {
		t.Fatalf("expected every cell of a 3x3 board to be chosen, saw %d", len(seen))
	}
}
