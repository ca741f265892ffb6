package game

import "testing"

func TestCollide_Walls(t *testing.T) {
	body := []Cell{{0, 0}}
	for _, head := range []Cell{{-1, 0}, {0, -1}, {5, 2}, {2, 5}} {
		if got := Collide(head, body, 5, 5); got != CauseWall {
			t.Fatalf("head %s: cause = %s, want wall", head, got)
		}
	}
}

func TestCollide_SelfIncludesTail(t *testing.T) {
	// A 2x2 loop: the head would step into the tail cell.
	body := []Cell{{1, 1}, {1, 2}, {2, 2}, {2, 1}}
	if got := Collide(Cell{2, 1}, body, 5, 5); got != CauseSelf {
		t.Fatalf("stepping onto the tail: cause = %s, want self", got)
	}
	if got := Collide(Cell{1, 2}, body, 5, 5); got != CauseSelf {
		t.Fatalf("stepping onto the neck: cause = %s, want self", got)
	}
}

func TestCollide_Free(t *testing.T) {
	body := []Cell{{2, 2}, {2, 1}}
	if IsFatal(Cell{2, 3}, body, 5, 5) {
		t.Fatal("empty in-bounds cell should not be fatal")
	}
}

func TestDeathCause_String(t *testing.T) {
	want := map[DeathCause]string{
		CauseNone: "none", CauseWall: "wall", CauseSelf: "self", CauseGridFull: "grid_full",
	}
	for c, s := range want {
		if c.String() != s {
			t.Fatalf("%d.String() = %q, want %q", c, c.String(), s)
		}
	}
}
