package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 230
	inspPad   = 4
	inspLineH = 14
)

// Inspector holds the panel toggle and its buffer.
type Inspector struct {
	open bool
	buf  *ebiten.Image
}

// inspectorLines builds the panel text for a snapshot.
func inspectorLines(s game.Snapshot, lastMove game.Direction, auto bool, wr *game.WindowReport) []string {
	cells := s.Rows * s.Cols
	free := cells - len(s.Snake)
	mode := "manual"
	if auto {
		mode = "autopilot"
	}
	id := s.Session
	if len(id) > 8 {
		id = id[:8]
	}
	lines := []string{
		fmt.Sprintf("[ SESSION %s ]", id),
		"",
		"-- state --",
		fmt.Sprintf("tick     %d", s.Tick),
		fmt.Sprintf("status   %s", s.Status),
		fmt.Sprintf("cause    %s", s.Cause),
		fmt.Sprintf("control  %s", mode),
		"-- snake --",
		fmt.Sprintf("head     %s", s.Head()),
		fmt.Sprintf("heading  %s (last %s)", s.Heading, lastMove),
		fmt.Sprintf("length   %d", len(s.Snake)),
		fmt.Sprintf("board    %dx%d free %d", s.Rows, s.Cols, free),
		"-- food --",
		fmt.Sprintf("at       %s", s.Food),
		fmt.Sprintf("distance %d", s.Head().Manhattan(s.Food)),
		fmt.Sprintf("score    %d", s.Score),
	}
	if wr != nil {
		lines = append(lines,
			"-- window --",
			fmt.Sprintf("T=%d..%d", wr.FromTick, wr.ToTick),
			fmt.Sprintf("avg len  %.1f", wr.AvgLength),
			fmt.Sprintf("avg dist %.1f", wr.AvgFoodDistance),
			fmt.Sprintf("gained   %d", wr.ScoreGained),
		)
	}
	return lines
}

// drawInspector renders the inspector panel at the top-right of the board.
func (g *Game) drawInspector(screen *ebiten.Image, s game.Snapshot) {
	if !g.inspector.open {
		return
	}
	lines := inspectorLines(s, g.sess.Engine().LastMove(), g.sess.AutoPilot(), g.reporter.WindowSummary())
	bufH := len(lines)*inspLineH + inspPad*2
	if g.inspector.buf == nil || g.inspector.buf.Bounds().Dy() != bufH {
		g.inspector.buf = ebiten.NewImage(inspBufW, bufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(bufH)
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	for i, l := range lines {
		c := textBright
		if len(l) > 1 && l[0] == '-' {
			c = textDim
		}
		drawText(buf, l, inspPad, inspPad+i*inspLineH, c)
	}

	px := g.panelX() - inspBufW*inspScale - 12
	py := g.offY + 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
