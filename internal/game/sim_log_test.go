package game

import (
	"strings"
	"testing"
)

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "snake", "move", "position", "(1,1)", 1)
	quiet.Add(1, "snake", "move", "eat", "head (1,1)", 1)
	if quiet.Len() != 1 {
		t.Fatalf("quiet log has %d entries, want 1", quiet.Len())
	}
	loud := NewSimLog(true)
	loud.AddVerbose(1, "snake", "move", "position", "(1,1)", 1)
	if loud.Len() != 1 || !loud.Verbose() {
		t.Fatal("verbose log should keep per-tick entries")
	}
}

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "input", "input", "direction", "up → left", 0)
	sl.Add(2, "snake", "move", "eat", "head (0,0) len=2", 1)
	sl.Add(5, "snake", "move", "eat", "head (0,3) len=3", 2)
	sl.Add(6, "snake", "state", "game_over", "cause=wall score=2 len=3", 2)

	if n := sl.CountCategory("move", "eat"); n != 2 {
		t.Fatalf("eat count = %d, want 2", n)
	}
	if e, ok := sl.LastOf("move", "eat"); !ok || e.Tick != 5 {
		t.Fatalf("LastOf eat = %+v,%v", e, ok)
	}
	if !sl.HasEntry("state", "", "cause=wall") {
		t.Fatal("expected a game over entry mentioning the wall")
	}
	if got := sl.FilterTickRange(2, 5); len(got) != 2 {
		t.Fatalf("range [2..5] has %d entries, want 2", len(got))
	}
	if got := sl.Since(3); len(got) != 1 || got[0].Key != "game_over" {
		t.Fatalf("Since(3) = %v", got)
	}
	if !strings.Contains(sl.Format(), "[T=006] snake  state") {
		t.Fatalf("unexpected format:\n%s", sl.Format())
	}
}

func TestSimLog_EngineEvents(t *testing.T) {
	ts := NewTestSim(
		WithVerbose(true),
		WithSetup(Setup{Rows: 5, Cols: 5, Snake: []Cell{{2, 2}}, Heading: Right, Food: Cell{2, 3}}),
	)
	ts.RunTicks(5)
	for _, want := range [][2]string{
		{"session", "load"},
		{"move", "eat"},
		{"food", "placed"},
		{"move", "position"},
		{"state", "game_over"},
	} {
		if ts.SimLog.CountCategory(want[0], want[1]) == 0 {
			t.Errorf("missing %s/%s entry\n%s", want[0], want[1], ts.SimLog.Format())
		}
	}
	if !strings.Contains(ts.SimLog.Summary(ts.Snapshot()), "status=game_over") {
		t.Fatalf("summary:\n%s", ts.SimLog.Summary(ts.Snapshot()))
	}
}
