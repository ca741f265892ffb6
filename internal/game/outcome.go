package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RunOutcome grades one finished (or capped) session.
type RunOutcome struct {
	Seed        int64
	Rows, Cols  int
	Ticks       int
	Score       int
	Length      int
	Cause       DeathCause
	Survived    bool    // still running when the tick budget ran out
	Fill        float64 // snake cells / board cells
	TicksPerEat float64 // -1 when nothing was eaten

	Perf  float64 // 0-100
	Grade string
}

// DetermineRunOutcome grades a session from its final snapshot.
// Perf blends growth (70%) and route efficiency (30%): growth is score over
// twice the board side, efficiency is the expected greedy distance per food
// ((rows+cols)/3) over the observed ticks per food. Clearing the board is 100.
func DetermineRunOutcome(s Snapshot, seed int64) RunOutcome {
	o := RunOutcome{
		Seed:        seed,
		Rows:        s.Rows,
		Cols:        s.Cols,
		Ticks:       s.Tick,
		Score:       s.Score,
		Length:      len(s.Snake),
		Cause:       s.Cause,
		Survived:    s.Status == Running,
		TicksPerEat: -1,
	}
	cells := s.Rows * s.Cols
	if cells > 0 {
		o.Fill = float64(len(s.Snake)) / float64(cells)
	}
	if s.Score > 0 {
		o.TicksPerEat = float64(s.Tick) / float64(s.Score)
	}

	switch {
	case s.Cause == CauseGridFull:
		o.Perf = 100
	case cells == 0:
		o.Perf = 0
	default:
		side := math.Sqrt(float64(cells))
		growth := perfFrac(s.Score, int(math.Round(2*side)))
		eff := 0.0
		if o.TicksPerEat > 0 {
			eff = math.Min(1, float64(s.Rows+s.Cols)/3/o.TicksPerEat)
		}
		o.Perf = perfClamp(100 * (0.7*growth + 0.3*eff))
	}
	o.Grade = PerfLetterGrade(o.Perf)
	return o
}

// FormatOutcomes returns a human-readable per-run report.
func FormatOutcomes(outcomes []RunOutcome) string {
	var sb strings.Builder
	sb.WriteString("\n=== Run Grades ===\n")
	for i, o := range outcomes {
		status := "died:" + o.Cause.String()
		if o.Survived {
			status = "survived"
		}
		tpe := "n/a"
		if o.TicksPerEat >= 0 {
			tpe = fmt.Sprintf("%.1f", o.TicksPerEat)
		}
		fmt.Fprintf(&sb, "  %-3s run=%-3d seed=%-6d [%s] score=%d len=%d ticks=%d fill=%.1f%% ticks/eat=%s perf=%.0f\n",
			o.Grade, i+1, o.Seed, status, o.Score, o.Length, o.Ticks, o.Fill*100, tpe, o.Perf)
	}
	return sb.String()
}

// FormatOutcomesSummary returns a compact aggregate over runs.
func FormatOutcomesSummary(outcomes []RunOutcome) string {
	if len(outcomes) == 0 {
		return "no runs\n"
	}
	causes := map[string]int{}
	var perfSum, scoreSum float64
	best := outcomes[0]
	for _, o := range outcomes {
		perfSum += o.Perf
		scoreSum += float64(o.Score)
		if o.Survived {
			causes["survived"]++
		} else {
			causes[o.Cause.String()]++
		}
		if o.Score > best.Score {
			best = o
		}
	}
	n := float64(len(outcomes))
	var sb strings.Builder
	fmt.Fprintf(&sb, "runs=%d avg_score=%.1f avg_perf=%.1f (%s)\n", len(outcomes), scoreSum/n, perfSum/n, PerfLetterGrade(perfSum/n))
	fmt.Fprintf(&sb, "causes: %s\n", perfTopCauses(causes))
	fmt.Fprintf(&sb, "best: seed=%d score=%d grade=%s\n", best.Seed, best.Score, best.Grade)
	return sb.String()
}

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return math.Min(1, float64(num)/float64(denom))
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopCauses(counts map[string]int) string {
	type kv struct {
		cause string
		count int
	}
	var items []kv
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].cause < items[j].cause
		}
		return items[i].count > items[j].count
	})
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s=%d", it.cause, it.count))
	}
	return strings.Join(parts, " ")
}
