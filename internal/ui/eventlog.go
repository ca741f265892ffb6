package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 14
)

// EventEntry is a single line in the event panel.
type EventEntry struct {
	Tick    int
	Actor   string // "snake", "input", "pilot", "--"
	Message string
}

// EventLog is a ring buffer of recent session events rendered on-screen.
// It is fed from the engine's SimLog, which stays the unbounded record.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
	cursor  int // SimLog entries already ingested
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (el *EventLog) Add(tick int, actor, msg string) {
	el.entries[el.head] = EventEntry{
		Tick:    tick,
		Actor:   actor,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Ingest copies SimLog entries recorded since the last call. Per-tick move
// entries are skipped; the panel would be nothing else.
func (el *EventLog) Ingest(sl *game.SimLog) int {
	if sl == nil {
		return 0
	}
	n := 0
	for _, e := range sl.Since(el.cursor) {
		el.cursor++
		if e.Category == "move" && e.Key == "position" {
			continue
		}
		el.Add(e.Tick, e.Actor, fmt.Sprintf("%s/%s %s", e.Category, e.Key, e.Value))
		n++
	}
	return n
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// actorColour picks the marker colour for an entry.
func actorColour(actor string) color.RGBA {
	switch actor {
	case "snake":
		return color.RGBA{R: 90, G: 200, B: 90, A: 255}
	case "input":
		return color.RGBA{R: 220, G: 200, B: 80, A: 255}
	case "pilot":
		return color.RGBA{R: 80, G: 160, B: 230, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the event panel on the right side of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	// Panel background.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	// Left separator line.
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "EVENT LOG", panelX+8, 3, textBright)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+logPanelWidth), 18, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := el.Recent()

	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3 // how many latest entries to highlight

	y := 22
	for i, e := range visible {
		isRecent := i >= len(visible)-recent
		if isRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, actorColour(e.Actor), false)

		col := textDim
		if isRecent {
			col = textBright
		}
		drawText(screen, clipLine(fmt.Sprintf("%4d %s", e.Tick, e.Message), (logPanelWidth-16)/charW), panelX+12, y, col)
		y += logLineHeight
	}
}

// clipLine trims s to at most n runes, marking the cut.
func clipLine(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
