package ui

import (
	"log"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

// debugReportTicks is how far back the copied report reaches.
const debugReportTicks = 200

// copyDebugReport puts a plain-text report of the session on the clipboard.
func (g *Game) copyDebugReport() {
	report := game.DebugReport(g.sess.Snapshot(), g.simLog, debugReportTicks)
	if wr := g.reporter.WindowSummary(); wr != nil {
		report += "\n" + wr.Format()
	}
	if err := clipboard.WriteAll(report); err != nil {
		log.Printf("clipboard: %v", err)
		g.setFlash("clipboard unavailable")
		return
	}
	g.setFlash("debug report copied")
}
