package game

import (
	"math"
	"strings"
	"testing"
)

func TestSimReporter_CollectFields(t *testing.T) {
	r := NewSimReporter(0)
	r.Collect(Snapshot{
		Tick: 8, Rows: 10, Cols: 10,
		Snake:   []Cell{{2, 3}, {2, 2}, {2, 1}, {2, 0}},
		Food:    Cell{5, 5},
		Score:   3,
		Heading: Right,
	})
	l := r.Latest()
	if l == nil {
		t.Fatal("expected a report")
	}
	if l.Length != 4 || l.Score != 3 || l.FoodDistance != 5 || l.WallDistance != 6 {
		t.Fatalf("unexpected report %+v", *l)
	}
	if math.Abs(l.FreeRatio-0.96) > 1e-9 {
		t.Fatalf("free ratio = %.3f, want 0.96", l.FreeRatio)
	}
}

func TestSimReporter_WindowSummary(t *testing.T) {
	r := NewSimReporter(16)
	if r.WindowSummary() != nil {
		t.Fatal("empty reporter should have no window")
	}
	for tick := 0; tick <= 40; tick += 8 {
		r.Collect(Snapshot{
			Tick: tick, Rows: 10, Cols: 10,
			Snake:   []Cell{{5, 5}},
			Food:    Cell{0, 0},
			Score:   tick / 8,
			Heading: Up,
		})
	}
	wr := r.WindowSummary()
	if wr == nil {
		t.Fatal("expected a window")
	}
	// Window covers T=24..40.
	if wr.FromTick != 24 || wr.ToTick != 40 || wr.SampleCount != 3 {
		t.Fatalf("window = T=%d..%d n=%d", wr.FromTick, wr.ToTick, wr.SampleCount)
	}
	if wr.ScoreGained != 2 {
		t.Fatalf("score gained = %d, want 2", wr.ScoreGained)
	}
	if wr.HeadingPct[Up] != 100 {
		t.Fatalf("heading up = %.0f%%, want 100%%", wr.HeadingPct[Up])
	}
	if !strings.Contains(wr.Format(), "headings: up=100%") {
		t.Fatalf("format:\n%s", wr.Format())
	}
}

func TestSimReporter_PrunesHistory(t *testing.T) {
	r := NewSimReporter(8)
	for i := 0; i < 500; i++ {
		r.Collect(Snapshot{Tick: i, Rows: 3, Cols: 3, Snake: []Cell{{1, 1}}})
	}
	if n := len(r.History()); n != 100 {
		t.Fatalf("history = %d, want pruned to 100", n)
	}
}

func TestWindowReport_NilFormat(t *testing.T) {
	var wr *WindowReport
	if wr.Format() == "" {
		t.Fatal("nil report should still format")
	}
}
