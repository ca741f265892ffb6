package game

import (
	"fmt"
	"strings"
)

// DebugReport renders a plain-text report of the session for the last
// lastTicks ticks: current state, the greedy route, a summary of the logged
// events and the events themselves grouped into stages between meals.
func DebugReport(s Snapshot, sl *SimLog, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := s.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- SnakeSense debug report ---\n")
	fmt.Fprintf(&b, "session=%s tick_range=[%d..%d] ticks=%d\n", s.Session, fromTick, toTick, toTick-fromTick+1)
	fmt.Fprintf(&b, "board=%dx%d status=%s cause=%s score=%d len=%d\n", s.Rows, s.Cols, s.Status, s.Cause, s.Score, len(s.Snake))
	fmt.Fprintf(&b, "head=%s heading=%s food=%s dist=%d\n", s.Head(), s.Heading, s.Food, s.Head().Manhattan(s.Food))
	if plan := (AutoPilot{}).Plan(s); len(plan) > 0 {
		hits := 0
		set := s.SnakeSet()
		for _, c := range plan {
			if _, ok := set[c]; ok {
				hits++
			}
		}
		fmt.Fprintf(&b, "pilot route=%d cells, crosses body %d times\n", len(plan), hits)
	}
	b.WriteByte('\n')

	if sl == nil {
		b.WriteString("(no sim log attached)\n")
		return b.String()
	}
	entries := sl.FilterTickRange(fromTick, toTick)
	if len(entries) == 0 {
		b.WriteString("(no events recorded yet)\n")
		return b.String()
	}

	sum := summarizeEntries(entries)
	fmt.Fprintf(&b, "summary: eats=%d turns=%d rejected=%d resets=%d moves=%d\n",
		sum.eats, sum.turns, sum.rejected, sum.resets, sum.moves)

	b.WriteString("stages:\n")
	for i, st := range buildStages(entries) {
		tag := ""
		if st.ate {
			tag = " [EAT]"
		}
		fmt.Fprintf(&b, "  %02d) T=%d..%d (%d events)%s\n", i+1, st.startTick, st.endTick, len(st.entries), tag)
		if len(st.entries) <= 4 {
			for _, e := range st.entries {
				b.WriteString("      ")
				b.WriteString(e.String())
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString("      first: ")
		b.WriteString(st.entries[0].String())
		b.WriteByte('\n')
		b.WriteString("      last:  ")
		b.WriteString(st.entries[len(st.entries)-1].String())
		b.WriteByte('\n')
	}
	return b.String()
}

type entrySummary struct {
	eats     int
	turns    int
	rejected int
	resets   int
	moves    int
}

func summarizeEntries(entries []SimLogEntry) entrySummary {
	var res entrySummary
	for _, e := range entries {
		switch e.Category + "/" + e.Key {
		case "move/eat":
			res.eats++
		case "move/position":
			res.moves++
		case "input/direction":
			res.turns++
		case "input/rejected":
			res.rejected++
		case "session/reset", "session/load":
			res.resets++
		}
	}
	return res
}

type reportStage struct {
	startTick int
	endTick   int
	ate       bool
	entries   []SimLogEntry
}

// buildStages splits entries after every meal so each stage covers one hunt.
func buildStages(entries []SimLogEntry) []reportStage {
	var out []reportStage
	cur := reportStage{startTick: entries[0].Tick}
	for _, e := range entries {
		cur.entries = append(cur.entries, e)
		cur.endTick = e.Tick
		if e.Category == "move" && e.Key == "eat" {
			cur.ate = true
			out = append(out, cur)
			cur = reportStage{startTick: e.Tick}
		}
	}
	if len(cur.entries) > 0 {
		out = append(out, cur)
	}
	return out
}
