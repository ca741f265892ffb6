package game

import (
	"strings"
	"testing"
)

func TestPerfLetterGrade(t *testing.T) {
	cases := map[float64]string{
		100: "A+", 93: "A+", 90: "A", 80: "B+", 72: "B", 64: "C+", 56: "C", 50: "D", 10: "F",
	}
	for score, want := range cases {
		if got := PerfLetterGrade(score); got != want {
			t.Fatalf("PerfLetterGrade(%.0f) = %s, want %s", score, got, want)
		}
	}
}

func TestDetermineRunOutcome_GridFullIsPerfect(t *testing.T) {
	o := DetermineRunOutcome(Snapshot{
		Rows: 1, Cols: 3, Tick: 2, Score: 1,
		Snake:  []Cell{{0, 2}, {0, 1}, {0, 0}},
		Status: GameOver, Cause: CauseGridFull,
	}, 5)
	if o.Perf != 100 || o.Grade != "A+" || o.Fill != 1 {
		t.Fatalf("unexpected outcome %+v", o)
	}
}

func TestDetermineRunOutcome_EarlyDeathFails(t *testing.T) {
	o := DetermineRunOutcome(Snapshot{
		Rows: 20, Cols: 20, Tick: 3,
		Snake:  []Cell{{0, 0}},
		Status: GameOver, Cause: CauseWall,
	}, 1)
	if o.Grade != "F" || o.Survived || o.TicksPerEat != -1 {
		t.Fatalf("unexpected outcome %+v", o)
	}
}

func TestDetermineRunOutcome_Efficiency(t *testing.T) {
	// 10x10: growth target 20, expected 6.67 ticks per meal.
	o := DetermineRunOutcome(Snapshot{
		Rows: 10, Cols: 10, Tick: 100, Score: 20,
		Snake:  make([]Cell, 21),
		Status: Running,
	}, 1)
	if !o.Survived || o.TicksPerEat != 5 {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if o.Perf != 100 {
		t.Fatalf("perf = %.1f, want 100", o.Perf)
	}
}

func TestFormatOutcomes(t *testing.T) {
	outs := []RunOutcome{
		{Seed: 1, Score: 4, Cause: CauseSelf, Grade: "D", Perf: 50, TicksPerEat: 9},
		{Seed: 2, Score: 9, Survived: true, Grade: "B", Perf: 72, TicksPerEat: -1},
	}
	full := FormatOutcomes(outs)
	if !strings.Contains(full, "died:self") || !strings.Contains(full, "survived") {
		t.Fatalf("per-run format:\n%s", full)
	}
	sum := FormatOutcomesSummary(outs)
	if !strings.Contains(sum, "best: seed=2 score=9") || !strings.Contains(sum, "self=1 survived=1") {
		t.Fatalf("summary:\n%s", sum)
	}
	if FormatOutcomesSummary(nil) != "no runs\n" {
		t.Fatal("empty summary")
	}
}
