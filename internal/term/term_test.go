package term

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestKeyInput(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want session.Input
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), session.InputUp},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), session.InputLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), session.InputDown},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), session.InputRight},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), session.InputReset},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), session.InputToggleAutoPilot},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), session.InputPause},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), session.InputQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), session.InputNone},
	}
	for _, c := range cases {
		if got := KeyInput(c.ev); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.ev.Name(), got, c.want)
		}
	}
}

func TestGeometry(t *testing.T) {
	screen := newScreen(t, 42, 23)
	rows, cols, err := Geometry(screen)()
	if err != nil {
		t.Fatal(err)
	}
	// min((42-2)/2, 23-3) = 20
	if rows != 20 || cols != 20 {
		t.Fatalf("board = %dx%d, want 20x20", rows, cols)
	}
}

func TestDraw(t *testing.T) {
	screen := newScreen(t, 30, 12)
	s := game.Snapshot{
		Rows: 5, Cols: 5, Score: 2,
		Snake: []game.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}},
		Food:  game.Cell{Row: 0, Col: 4},
	}
	Draw(screen, s, View{AutoPilot: true})

	if r, _, _, _ := screen.GetContent(0, 1); r != '┌' {
		t.Fatalf("corner = %q", r)
	}
	// Food at row 0 col 4: x = 1+4*2, y = 1+1+0.
	if r, _, _, _ := screen.GetContent(9, 2); r != '●' {
		t.Fatalf("food cell = %q", r)
	}
	_, _, st, _ := screen.GetContent(5, 4)
	if _, bg, _ := st.Decompose(); bg != tcell.ColorLime {
		t.Fatalf("head background = %v", bg)
	}
	status := ""
	for x := 0; x < 30; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		status += string(r)
	}
	if want := " score 2  len 2  autopilot"; status[:len(want)] != want {
		t.Fatalf("status = %q", status)
	}
}

func TestRun_PauseThenQuit(t *testing.T) {
	screen := newScreen(t, 40, 20)
	e, err := game.NewEngine(10, 10, game.WithRand(rand.New(rand.NewSource(1)))) // #nosec G404 -- test
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New(e, session.WithGeometry(Geometry(screen)))

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), screen, sess, time.Hour) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if !sess.Paused() {
		t.Fatal("p should have paused the session before quitting")
	}
}
