// Package term is the terminal front end: it renders a session on a tcell
// screen and turns key events into session inputs.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

// Each board cell is two terminal columns wide so the board looks square.
const cellCols = 2

// Rows used above and below the board: status line plus the two border rows.
const chromeRows = 3

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleSnake  = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleHead   = tcell.StyleDefault.Background(tcell.ColorLime)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// KeyInput maps a key event to a session input.
func KeyInput(ev *tcell.EventKey) session.Input {
	switch ev.Key() {
	case tcell.KeyUp:
		return session.InputUp
	case tcell.KeyDown:
		return session.InputDown
	case tcell.KeyLeft:
		return session.InputLeft
	case tcell.KeyRight:
		return session.InputRight
	case tcell.KeyTab:
		return session.InputToggleAutoPilot
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return session.InputQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W', 'k':
			return session.InputUp
		case 's', 'S', 'j':
			return session.InputDown
		case 'a', 'A', 'h':
			return session.InputLeft
		case 'd', 'D', 'l':
			return session.InputRight
		case 'r', 'R':
			return session.InputReset
		case ' ':
			return session.InputToggleAutoPilot
		case 'p', 'P':
			return session.InputPause
		case 'q', 'Q':
			return session.InputQuit
		}
	}
	return session.InputNone
}

// Geometry sizes the board to the current terminal.
func Geometry(screen tcell.Screen) session.Geometry {
	return func() (int, int, error) {
		w, h := screen.Size()
		return game.GridSize((w-2)/cellCols, h-chromeRows, 1)
	}
}

// View is what the renderer needs besides the engine snapshot.
type View struct {
	AutoPilot bool
	Paused    bool
}

// Draw renders the snapshot: status line on row 0, then the bordered board.
func Draw(screen tcell.Screen, s game.Snapshot, v View) {
	screen.Clear()

	mode := "manual"
	if v.AutoPilot {
		mode = "autopilot"
	}
	status := fmt.Sprintf(" score %d  len %d  %s", s.Score, len(s.Snake), mode)
	if v.Paused {
		status += "  [paused]"
	}
	putString(screen, 0, 0, status, styleText)

	top := 1
	right := 1 + s.Cols*cellCols
	bottom := top + 1 + s.Rows
	for x := 1; x < right; x++ {
		screen.SetContent(x, top, '─', nil, styleBorder)
		screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		screen.SetContent(0, y, '│', nil, styleBorder)
		screen.SetContent(right, y, '│', nil, styleBorder)
	}
	screen.SetContent(0, top, '┌', nil, styleBorder)
	screen.SetContent(right, top, '┐', nil, styleBorder)
	screen.SetContent(0, bottom, '└', nil, styleBorder)
	screen.SetContent(right, bottom, '┘', nil, styleBorder)

	fx, fy := cellPos(s.Food, top)
	screen.SetContent(fx, fy, '●', nil, styleFood)
	screen.SetContent(fx+1, fy, ' ', nil, tcell.StyleDefault)

	for i, c := range s.Snake {
		st := styleSnake
		if i == 0 {
			st = styleHead
		}
		x, y := cellPos(c, top)
		screen.SetContent(x, y, ' ', nil, st)
		screen.SetContent(x+1, y, ' ', nil, st)
	}

	if s.Over() {
		msg := fmt.Sprintf(" GAME OVER (%s)  r: restart  q: quit ", s.Cause)
		putString(screen, max(1, right/2-len(msg)/2), top+1+s.Rows/2, msg, styleWarn)
	}
}

// cellPos returns the screen column and row of a board cell.
func cellPos(c game.Cell, top int) (int, int) {
	return 1 + c.Col*cellCols, top + 1 + c.Row
}

func putString(screen tcell.Screen, x, y int, s string, st tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, st)
		x++
	}
}

// Run drives sess on screen until the player quits or ctx is cancelled.
// The caller owns the screen and must Fini it afterwards.
func Run(ctx context.Context, screen tcell.Screen, sess *session.Session, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan session.Input, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			in := session.InputNone
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in = KeyInput(ev)
			case *tcell.EventResize:
				screen.Sync()
			default:
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sess.Run(ctx, interval, inputs, func(s game.Snapshot) {
		Draw(screen, s, View{AutoPilot: sess.AutoPilot(), Paused: sess.Paused()})
		screen.Show()
	})
}
