// Package ui is the desktop front end: an ebiten window that renders the
// board, an event panel and debug overlays, and feeds key presses into a
// session.
package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Snake-Sense/internal/config"
	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// ticksPerSecond is ebiten's fixed Update rate.
const ticksPerSecond = 60

// simSpeeds are the selectable cadence multipliers.
var simSpeeds = []float64{0.5, 1, 2, 4}

var (
	colBackground = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	colBoard      = color.RGBA{R: 22, G: 28, B: 22, A: 255}
	colGrid       = color.RGBA{R: 32, G: 40, B: 32, A: 255}
	colBorder     = color.RGBA{R: 65, G: 90, B: 65, A: 255}
	colSnake      = color.RGBA{R: 70, G: 180, B: 70, A: 255}
	colHead       = color.RGBA{R: 140, G: 235, B: 120, A: 255}
	colFood       = color.RGBA{R: 220, G: 60, B: 50, A: 255}
)

type keyBinding struct {
	keys []ebiten.Key
	in   session.Input
}

// sessionKeys map straight onto session inputs.
var sessionKeys = []keyBinding{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, session.InputUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, session.InputDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, session.InputLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, session.InputRight},
	{[]ebiten.Key{ebiten.KeyR}, session.InputReset},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyTab}, session.InputToggleAutoPilot},
	{[]ebiten.Key{ebiten.KeyP}, session.InputPause},
	{[]ebiten.Key{ebiten.KeyEscape}, session.InputQuit},
}

// Game implements ebiten.Game on top of a session.
type Game struct {
	cfg      config.Config
	sess     *session.Session
	simLog   *game.SimLog
	events   *EventLog
	reporter *game.SimReporter

	width    int // window size, tracked from Layout
	height   int
	offX     int // pixel offset from window left to board left
	offY     int
	cellSize int

	showHUD   bool
	inspector Inspector

	// Cadence.
	simSpeed   float64 // multiplier on the configured tick interval
	tickAccum  float64 // fractional engine steps owed
	stepFrames float64 // Update calls per engine step at 1x

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	flash      string // transient status line
	flashUntil int
	frame      int
}

// New builds the desktop game from a validated config.
func New(cfg config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows, cols, err := cfg.GridSize()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:        cfg,
		simLog:     game.NewSimLog(cfg.Verbose),
		events:     NewEventLog(),
		reporter:   game.NewSimReporter(0),
		offX:       borderWidth,
		offY:       borderWidth,
		cellSize:   cfg.CellSize,
		showHUD:    true,
		simSpeed:   1,
		stepFrames: stepFrames(cfg),
	}
	g.width, g.height = WindowSize(cfg, rows, cols)

	eng, err := game.NewEngine(rows, cols, cfg.EngineOptions(g.simLog)...)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	g.sess = session.New(eng,
		session.WithAutoPilot(cfg.AutoPilot),
		session.WithGeometry(g.geometry),
	)
	return g, nil
}

// WindowSize returns the window needed for a rows x cols board.
func WindowSize(cfg config.Config, rows, cols int) (int, int) {
	return borderWidth + cols*cfg.CellSize + borderWidth + logPanelWidth,
		borderWidth + rows*cfg.CellSize + borderWidth
}

// stepFrames converts the tick interval into Update calls per step.
func stepFrames(cfg config.Config) float64 {
	f := cfg.TickInterval.Seconds() * ticksPerSecond
	if f < 1 {
		return 1
	}
	return f
}

// geometry derives the next board from the current window, so a resize
// takes effect on the following reset.
func (g *Game) geometry() (int, int, error) {
	return game.GridSize(g.width-2*borderWidth-logPanelWidth, g.height-2*borderWidth, g.cellSize)
}

func (g *Game) Update() error {
	g.frame++
	if quit := g.handleInput(); quit {
		return ebiten.Termination
	}
	g.events.Ingest(g.simLog)

	if g.sess.Paused() {
		return nil
	}
	g.tickAccum += g.simSpeed / g.stepFrames
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one engine step and samples the reporter.
func (g *Game) simTick() {
	eng := g.sess.Engine()
	if eng.Over() {
		g.tickAccum = 0
		return
	}
	res, err := g.sess.Step()
	if err != nil {
		if errors.Is(err, game.ErrGridFull) {
			g.setFlash("board full: you win")
		} else {
			log.Printf("step: %v", err)
		}
	}
	if res.Tick%game.ReportEveryTicks == 0 || res.Died {
		g.reporter.Collect(eng.Snapshot())
	}
}

// handleInput processes key presses (edge-triggered). It reports whether
// the player asked to quit.
func (g *Game) handleInput() bool {
	for _, b := range sessionKeys {
		if !anyJustPressed(b.keys...) {
			continue
		}
		if b.in == session.InputQuit {
			return true
		}
		g.apply(b.in)
	}
	// Enter restarts from the game-over screen.
	if g.sess.Engine().Over() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.apply(session.InputReset)
	}

	// Sim speed controls: ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = stepSpeed(g.simSpeed, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = stepSpeed(g.simSpeed, 1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.open = !g.inspector.open
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyDebugReport()
	}
	return false
}

func (g *Game) apply(in session.Input) {
	if err := g.sess.Apply(in); err != nil {
		log.Printf("%s: %v", in, err)
		g.setFlash(err.Error())
	}
	if in == session.InputReset {
		g.tickAccum = 0
		g.reporter = game.NewSimReporter(0)
		g.resizeToBoard()
	}
}

// resizeToBoard tracks the board actually in play after a reset.
func (g *Game) resizeToBoard() {
	eng := g.sess.Engine()
	w, h := WindowSize(g.cfg, eng.Rows(), eng.Cols())
	if w != g.width || h != g.height {
		ebiten.SetWindowSize(w, h)
	}
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// stepSpeed moves one notch through simSpeeds in direction dir.
func stepSpeed(cur float64, dir int) float64 {
	idx := 0
	for i, s := range simSpeeds {
		if s <= cur {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(simSpeeds) {
		idx = len(simSpeeds) - 1
	}
	return simSpeeds[idx]
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashUntil = g.frame + 3*ticksPerSecond
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.sess.Snapshot()

	g.drawBoard(screen, snap)
	if g.sess.AutoPilot() {
		g.drawPlan(screen, snap)
	}
	g.drawScoreLine(screen, snap)
	if snap.Over() {
		g.drawGameOver(screen, snap)
	}

	g.events.Draw(screen, g.panelX(), g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen, snap)
}

func (g *Game) panelX() int {
	return g.width - logPanelWidth
}

// cellOrigin returns the top-left pixel of a board cell.
func (g *Game) cellOrigin(c game.Cell) (float32, float32) {
	return float32(g.offX + c.Col*g.cellSize), float32(g.offY + c.Row*g.cellSize)
}

func (g *Game) drawBoard(screen *ebiten.Image, s game.Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	bw, bh := float32(s.Cols*g.cellSize), float32(s.Rows*g.cellSize)
	vector.FillRect(screen, ox, oy, bw, bh, colBoard, false)
	drawGridOffset(screen, g.offX, g.offY, s.Cols*g.cellSize, s.Rows*g.cellSize, g.cellSize, colGrid)

	cs := float32(g.cellSize)
	inset := float32(1)
	fx, fy := g.cellOrigin(s.Food)
	vector.FillRect(screen, fx+inset*2, fy+inset*2, cs-inset*4, cs-inset*4, colFood, false)

	for i := len(s.Snake) - 1; i >= 0; i-- {
		x, y := g.cellOrigin(s.Snake[i])
		c := colSnake
		if i == 0 {
			c = colHead
		}
		vector.FillRect(screen, x+inset, y+inset, cs-inset*2, cs-inset*2, c, false)
	}

	vector.StrokeRect(screen, ox-1, oy-1, bw+2, bh+2, 2.0, colBorder, false)
	vector.StrokeRect(screen, ox-3, oy-3, bw+6, bh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)
}

// drawScoreLine prints score and mode above the board.
func (g *Game) drawScoreLine(screen *ebiten.Image, s game.Snapshot) {
	mode := "manual"
	if g.sess.AutoPilot() {
		mode = "autopilot"
	}
	line := fmt.Sprintf("SCORE %d   LEN %d   %s", s.Score, len(s.Snake), mode)
	drawText(screen, line, g.offX, (borderWidth-lineH)/2, textBright)
	if g.flash != "" && g.frame < g.flashUntil {
		drawText(screen, g.flash, g.offX+textWidth(line)+24, (borderWidth-lineH)/2, textWarn)
	}
}

// drawHUD renders keyboard shortcut hints in the bottom-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	speedStr := speedLabel(g.simSpeed)
	if g.sess.Paused() {
		speedStr = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
		"arrows/WASD steer  R reset",
		"Space/Tab autopilot",
		"[I] inspector  [C] copy report",
		"[H] toggle HUD  Esc quit",
	}

	const padX = 5
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bufW, bufH := g.width/hudScale, g.height/hudScale
	if g.hudBuf == nil || g.hudBuf.Bounds().Dx() != bufW || g.hudBuf.Bounds().Dy() != bufH {
		g.hudBuf = ebiten.NewImage(bufW, bufH)
	}
	bx := float32(g.offX/hudScale + 4)
	by := float32(bufH) - boxH - float32(g.offY/hudScale) - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)
	for i, line := range lines {
		drawText(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH, textBright)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func speedLabel(s float64) string {
	switch s {
	case 1:
		return "1x"
	case 2:
		return "2x"
	case 4:
		return "4x"
	}
	return fmt.Sprintf("%.1fx", s)
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}

// Layout follows the window so that a resize is picked up by the next reset.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}
