package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

// drawPlan draws the autopilot's greedy route as faint markers from the head
// to the food. Cells where the route crosses the body are drawn in red: the
// pilot will die there unless the body moves out of the way first.
func (g *Game) drawPlan(screen *ebiten.Image, s game.Snapshot) {
	plan := g.sess.Plan()
	if len(plan) == 0 {
		return
	}
	body := s.SnakeSet()
	cs := float32(g.cellSize)
	dot := cs / 4
	if dot < 2 {
		dot = 2
	}

	prevX, prevY := g.cellCentre(s.Head())
	for i, c := range plan {
		x, y := g.cellCentre(c)
		lineCol := color.RGBA{R: 80, G: 160, B: 230, A: 70}
		dotCol := color.RGBA{R: 80, G: 160, B: 230, A: 140}
		if _, hit := body[c]; hit {
			lineCol = color.RGBA{R: 230, G: 70, B: 60, A: 110}
			dotCol = color.RGBA{R: 230, G: 70, B: 60, A: 200}
		}
		vector.StrokeLine(screen, prevX, prevY, x, y, 1.5, lineCol, false)
		if i < len(plan)-1 {
			vector.FillRect(screen, x-dot/2, y-dot/2, dot, dot, dotCol, false)
		}
		prevX, prevY = x, y
	}
}

func (g *Game) cellCentre(c game.Cell) (float32, float32) {
	x, y := g.cellOrigin(c)
	half := float32(g.cellSize) / 2
	return x + half, y + half
}

// drawGameOver dims the board and shows the cause with a reset affordance.
func (g *Game) drawGameOver(screen *ebiten.Image, s game.Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	bw, bh := float32(s.Cols*g.cellSize), float32(s.Rows*g.cellSize)
	vector.FillRect(screen, ox, oy, bw, bh, color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)

	lines := []string{
		"GAME OVER",
		gameOverReason(s.Cause),
		fmt.Sprintf("score %d  length %d", s.Score, len(s.Snake)),
		"[R] or [Enter] to play again",
	}
	boxW := 0
	for _, l := range lines {
		if w := textWidth(l); w > boxW {
			boxW = w
		}
	}
	boxW += 24
	boxH := len(lines)*(lineH+4) + 16
	bx := g.offX + int(bw)/2 - boxW/2
	by := g.offY + int(bh)/2 - boxH/2

	vector.FillRect(screen, float32(bx), float32(by), float32(boxW), float32(boxH), color.RGBA{R: 14, G: 16, B: 14, A: 235}, false)
	vector.StrokeRect(screen, float32(bx), float32(by), float32(boxW), float32(boxH), 1.0, colBorder, false)
	for i, l := range lines {
		c := textBright
		if i == 0 {
			c = textWarn
		}
		drawText(screen, l, bx+boxW/2-textWidth(l)/2, by+8+i*(lineH+4), c)
	}
}

func gameOverReason(c game.DeathCause) string {
	switch c {
	case game.CauseWall:
		return "hit the wall"
	case game.CauseSelf:
		return "bit its own tail"
	case game.CauseGridFull:
		return "board full, nothing left to eat"
	default:
		return ""
	}
}
