package game

import "testing"

// --- Invariant helpers ---

// checkBoard verifies the structural invariants of a snapshot: body in bounds,
// no overlapping cells, food on the board and off the body while running.
func checkBoard(t *testing.T, s Snapshot) {
	t.Helper()
	seen := make(map[Cell]struct{}, len(s.Snake))
	for _, c := range s.Snake {
		if !c.InBounds(s.Rows, s.Cols) {
			t.Fatalf("T=%d: body cell %s off the %dx%d board", s.Tick, c, s.Rows, s.Cols)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("T=%d: body overlaps at %s", s.Tick, c)
		}
		seen[c] = struct{}{}
	}
	for i := 1; i < len(s.Snake); i++ {
		if s.Snake[i].Manhattan(s.Snake[i-1]) != 1 {
			t.Fatalf("T=%d: body broken between %s and %s", s.Tick, s.Snake[i-1], s.Snake[i])
		}
	}
	if s.Status == Running {
		if !s.Food.InBounds(s.Rows, s.Cols) {
			t.Fatalf("T=%d: food %s off the board", s.Tick, s.Food)
		}
		if _, on := seen[s.Food]; on {
			t.Fatalf("T=%d: food %s on the body", s.Tick, s.Food)
		}
	}
}

// --- Invariants across many seeded autopilot runs ---

func TestInvariant_AutoPilotRuns(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		ts := NewTestSim(
			WithBoard(12, 16),
			WithSeed(seed),
			WithAutoPilot(true),
		)
		checkBoard(t, ts.Snapshot())
		for i := 0; i < 3000 && !ts.Engine.Over(); i++ {
			before := ts.Snapshot()
			ts.RunTicks(1)
			after := ts.Snapshot()
			checkBoard(t, after)

			if after.Over() {
				if after.Score != before.Score || len(after.Snake) != len(before.Snake) {
					t.Fatalf("seed %d T=%d: fatal tick changed score or length", seed, after.Tick)
				}
				continue
			}
			dr, dc := after.Heading.Delta()
			if after.Head() != before.Head().Add(dr, dc) {
				t.Fatalf("seed %d T=%d: head %s is not one %s step from %s",
					seed, after.Tick, after.Head(), after.Heading, before.Head())
			}
			grew := len(after.Snake) - len(before.Snake)
			scored := after.Score - before.Score
			if grew != scored || grew < 0 || grew > 1 {
				t.Fatalf("seed %d T=%d: grew %d scored %d", seed, after.Tick, grew, scored)
			}
			if grew == 1 && after.Head() != before.Food {
				t.Fatalf("seed %d T=%d: grew without eating", seed, after.Tick)
			}
		}
	}
}

// --- Reversal is never accepted on a multi-cell body ---

func TestInvariant_ReversalAlwaysRejected(t *testing.T) {
	for _, d := range AllDirections {
		dr, dc := d.Delta()
		head := Cell{4, 4}
		neck := head.Add(-dr, -dc)
		ts := NewTestSim(WithSetup(Setup{Rows: 9, Cols: 9, Snake: []Cell{head, neck}, Heading: d, Food: Cell{0, 0}}))
		if ts.Request(d.Opposite()) {
			t.Fatalf("reversal of %s accepted", d)
		}
		if ts.Engine.Heading() != d {
			t.Fatalf("heading changed to %s after rejected reversal of %s", ts.Engine.Heading(), d)
		}
	}
}

// --- ProposeHead moves exactly one axis by one ---

func TestInvariant_ProposeHeadUnitStep(t *testing.T) {
	for _, body := range [][]Cell{{{3, 3}}, {{3, 3}, {3, 2}}, {{0, 0}, {0, 1}, {1, 1}}} {
		s := NewSnake(body...)
		for _, d := range AllDirections {
			p := s.ProposeHead(d)
			h := s.Head()
			rowMoved := p.Row != h.Row
			colMoved := p.Col != h.Col
			if rowMoved == colMoved || p.Manhattan(h) != 1 {
				t.Fatalf("len %d %s: %s -> %s is not a unit step", s.Len(), d, h, p)
			}
		}
	}
}
