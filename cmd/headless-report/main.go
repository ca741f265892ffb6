package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstEatTick  int
	finishedTick  int
	eats          int
	turns         int
	rejected      int
	maxFoodDist   int
	longestHungry int // most ticks between two meals (or start → first meal)

	windowSummary *game.WindowReport
	outcome       game.RunOutcome
}

type runConfig struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	rows     int
	cols     int
	verbose  bool
}

func main() {
	var rc runConfig
	flag.IntVar(&rc.runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&rc.ticks, "ticks", 2000, "tick budget per run")
	flag.Int64Var(&rc.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&rc.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&rc.rows, "rows", 20, "board rows")
	flag.IntVar(&rc.cols, "cols", 20, "board columns")
	flag.BoolVar(&rc.verbose, "verbose", false, "dump the sim log of every run")
	flag.Parse()

	if err := rc.validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless AutoPilot Report ===\n")
	fmt.Printf("board=%dx%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		rc.rows, rc.cols, rc.runs, rc.ticks, rc.seedBase, rc.seedStep)

	all := make([]runStats, 0, rc.runs)
	for i := 0; i < rc.runs; i++ {
		seed := rc.seedBase + int64(i)*rc.seedStep
		stats, sl := runAutoPilot(i+1, seed, rc)
		all = append(all, stats)
		printRun(stats)
		if rc.verbose {
			fmt.Print(sl.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
}

func (rc runConfig) validate() error {
	if rc.runs <= 0 {
		return errors.New("-runs must be > 0")
	}
	if rc.ticks <= 0 {
		return errors.New("-ticks must be > 0")
	}
	if rc.rows <= 0 || rc.cols <= 0 {
		return fmt.Errorf("board %dx%d: %w", rc.rows, rc.cols, game.ErrInvalidGeometry)
	}
	return nil
}

func runAutoPilot(runIndex int, seed int64, rc runConfig) (runStats, *game.SimLog) {
	ts := game.NewTestSim(
		game.WithBoard(rc.rows, rc.cols),
		game.WithSeed(seed),
		game.WithVerbose(rc.verbose),
		game.WithAutoPilot(true),
	)
	ts.RunTicks(rc.ticks)

	entries := ts.SimLog.Entries()
	stats := runStats{
		runIndex:      runIndex,
		seed:          seed,
		firstEatTick:  firstTick(entries, "move", "eat", ""),
		finishedTick:  ts.FinishedAt(),
		eats:          ts.SimLog.CountCategory("move", "eat"),
		turns:         ts.SimLog.CountCategory("input", "direction"),
		rejected:      ts.SimLog.CountCategory("input", "rejected"),
		windowSummary: ts.Reporter.WindowSummary(),
		outcome:       game.DetermineRunOutcome(ts.Snapshot(), seed),
	}

	last := 0
	for _, e := range entries {
		switch {
		case e.Category == "food" && e.Key == "placed":
			if d := int(e.NumVal); d > stats.maxFoodDist {
				stats.maxFoodDist = d
			}
		case e.Category == "move" && e.Key == "eat":
			if gap := e.Tick - last; gap > stats.longestHungry {
				stats.longestHungry = gap
			}
			last = e.Tick
		}
	}
	if gap := ts.CurrentTick() - last; gap > stats.longestHungry {
		stats.longestHungry = gap
	}
	return stats, ts.SimLog
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_eat=%d finished=%d\n", rs.firstEatTick, rs.finishedTick)
	fmt.Printf("event_totals: eat=%d turn=%d rejected=%d\n", rs.eats, rs.turns, rs.rejected)
	fmt.Printf("food: max_spawn_dist=%d longest_hungry=%d\n", rs.maxFoodDist, rs.longestHungry)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Print(game.FormatOutcomes([]game.RunOutcome{rs.outcome}))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalEats := 0
	totalTurns := 0
	totalRejected := 0
	firstEats := make([]int, 0, len(all))
	finished := make([]int, 0, len(all))
	outcomes := make([]game.RunOutcome, 0, len(all))
	for _, rs := range all {
		totalEats += rs.eats
		totalTurns += rs.turns
		totalRejected += rs.rejected
		if rs.firstEatTick >= 0 {
			firstEats = append(firstEats, rs.firstEatTick)
		}
		if rs.finishedTick >= 0 {
			finished = append(finished, rs.finishedTick)
		}
		outcomes = append(outcomes, rs.outcome)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("avg_events_per_run: eat=%.1f turn=%.1f rejected=%.1f\n",
		avg(totalEats, len(all)), avg(totalTurns, len(all)), avg(totalRejected, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_eat=%s finished=%s\n",
		avgTickString(firstEats), avgTickString(finished))
	fmt.Print(game.FormatOutcomesSummary(outcomes))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
