package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports
// (~20s at the default 150ms step).
const reportWindowTicks = 128

// ReportEveryTicks is how often drivers sample a report.
const ReportEveryTicks = 8

// --- Snapshot types ---

// SimReport captures the session at one tick.
type SimReport struct {
	Tick         int
	Length       int
	Score        int
	FoodDistance int     // Manhattan distance head → food
	FreeRatio    float64 // free cells / board cells
	WallDistance int     // cells from head to the wall it is heading towards
	Heading      Direction
	Status       Status
}

// --- Reporter ---

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a report from a snapshot.
func (r *SimReporter) Collect(s Snapshot) {
	cells := s.Rows * s.Cols
	free := 0.0
	if cells > 0 {
		free = float64(cells-len(s.Snake)) / float64(cells)
	}
	r.history = append(r.history, SimReport{
		Tick:         s.Tick,
		Length:       len(s.Snake),
		Score:        s.Score,
		FoodDistance: s.Head().Manhattan(s.Food),
		FreeRatio:    free,
		WallDistance: wallDistance(s),
		Heading:      s.Heading,
		Status:       s.Status,
	})

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / ReportEveryTicks * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

func wallDistance(s Snapshot) int {
	h := s.Head()
	switch s.Heading {
	case Up:
		return h.Row
	case Down:
		return s.Rows - 1 - h.Row
	case Left:
		return h.Col
	case Right:
		return s.Cols - 1 - h.Col
	}
	return 0
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all retained reports, oldest first.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		HeadingPct:  make(map[Direction]float64),
	}
	for _, rpt := range window {
		wr.AvgLength += float64(rpt.Length)
		wr.AvgFoodDistance += float64(rpt.FoodDistance)
		wr.AvgFreeRatio += rpt.FreeRatio
		wr.AvgWallDistance += float64(rpt.WallDistance)
		wr.HeadingPct[rpt.Heading]++
		if rpt.Length > wr.MaxLength {
			wr.MaxLength = rpt.Length
		}
	}
	wr.ScoreGained = window[0].Score - window[len(window)-1].Score
	wr.AvgLength /= n
	wr.AvgFoodDistance /= n
	wr.AvgFreeRatio /= n
	wr.AvgWallDistance /= n
	for d, c := range wr.HeadingPct {
		wr.HeadingPct[d] = c / n * 100
	}
	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Heading distribution as percentages (0-100).
	HeadingPct map[Direction]float64

	AvgLength       float64
	AvgFoodDistance float64
	AvgFreeRatio    float64
	AvgWallDistance float64
	MaxLength       int
	ScoreGained     int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "length avg=%.1f max=%d  score_gained=%d\n", wr.AvgLength, wr.MaxLength, wr.ScoreGained)
	fmt.Fprintf(&sb, "food_dist avg=%.1f  wall_dist avg=%.1f  free=%.0f%%\n",
		wr.AvgFoodDistance, wr.AvgWallDistance, wr.AvgFreeRatio*100)
	sb.WriteString("headings:")
	for _, d := range AllDirections {
		if pct := wr.HeadingPct[d]; pct > 0.5 {
			fmt.Fprintf(&sb, " %s=%.0f%%", d, pct)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FormatLatest returns the most recent report as one line.
func (r *SimReporter) FormatLatest() string {
	l := r.Latest()
	if l == nil {
		return "No report yet."
	}
	return fmt.Sprintf("[T=%d] len=%d score=%d food_dist=%d wall_dist=%d free=%.0f%% heading=%s status=%s",
		l.Tick, l.Length, l.Score, l.FoodDistance, l.WallDistance, l.FreeRatio*100, l.Heading, l.Status)
}
