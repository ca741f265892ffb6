package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless simulation harness used by tests and the batch
// reporter. It drives an Engine the same way the interactive front ends do,
// with deterministic seeding, an optional AutoPilot and structured logging.
type TestSim struct {
	Rows     int
	Cols     int
	Engine   *Engine
	SimLog   *SimLog
	Reporter *SimReporter

	rng         *rand.Rand
	start       StartPolicy
	foodRetries int
	autoPilot   bool
	pilot       AutoPilot
	sessionSeq  int

	setup    *Setup
	heading  *Direction
	lastErr  error
	finished int // tick at which the session ended, -1 while running
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // board, seed, verbose, policies: applied before the engine exists
	simOptState                      // explicit board state: applied after the engine is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithBoard sets the board dimensions.
func WithBoard(rows, cols int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rows = rows
		ts.Cols = cols
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithStartPolicy selects the spawn cell policy used on reset.
func WithStartPolicy(p StartPolicy) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.start = p
	}}
}

// WithFoodRetryBudget caps rejection-sampling attempts per food placement.
func WithFoodRetryBudget(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.foodRetries = n
	}}
}

// WithAutoPilot lets the greedy pilot steer before every tick.
func WithAutoPilot(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autoPilot = on
	}}
}

// WithSetup loads an explicit snake, heading, food and score.
func WithSetup(s Setup) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		cp := s
		cp.Snake = append([]Cell(nil), s.Snake...)
		ts.setup = &cp
	}}
}

// WithHeading forces the initial heading of a randomly started session.
func WithHeading(d Direction) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.heading = &d
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (board, seed, verbose, policies), then the engine is built
//  2. Board state (explicit setup, forced heading)
//
// It panics when the options describe an impossible board; tests construct
// their fixtures by hand so that is a programming error.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Rows:     20,
		Cols:     20,
		SimLog:   NewSimLog(false),
		Reporter: NewSimReporter(reportWindowTicks),
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		finished: -1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	eng, err := NewEngine(ts.Rows, ts.Cols,
		WithRand(ts.rng),
		WithSimLog(ts.SimLog),
		WithStart(ts.start),
		WithFoodRetries(ts.foodRetries),
		WithSessionIDs(ts.nextSessionID),
	)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Engine = eng

	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(ts)
		}
	}
	if ts.setup != nil {
		if err := eng.Load(*ts.setup); err != nil {
			panic(fmt.Sprintf("test sim: %v", err))
		}
		ts.Rows, ts.Cols = eng.Rows(), eng.Cols()
	}
	if ts.heading != nil {
		eng.heading = *ts.heading
		eng.moved = *ts.heading
	}
	return ts
}

// nextSessionID yields predictable ids so log output is stable across runs.
func (ts *TestSim) nextSessionID() string {
	ts.sessionSeq++
	return fmt.Sprintf("sim-%04d", ts.sessionSeq)
}

// Request forwards a direction request to the engine.
func (ts *TestSim) Request(d Direction) bool {
	return ts.Engine.RequestDirection(d)
}

// RunTicks advances the simulation n ticks. Ticks after game over are no-ops.
// It returns the number of ticks that actually advanced the session.
func (ts *TestSim) RunTicks(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if ts.Engine.Over() {
			break
		}
		ts.runOneTick()
		ran++
	}
	return ran
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if ts.Engine.Over() {
			break
		}
		ts.runOneTick()
		if predicate(ts) {
			return ts.Engine.CurrentTick()
		}
	}
	return -1
}

// runOneTick mirrors one driver step: steer, tick, sample.
func (ts *TestSim) runOneTick() {
	if ts.autoPilot {
		if d, ok := ts.pilot.Next(ts.Engine.Snapshot()); ok {
			ts.Engine.RequestDirection(d)
		}
	}
	if _, err := ts.Engine.Tick(); err != nil {
		ts.lastErr = err
	}
	tick := ts.Engine.CurrentTick()
	if ts.Engine.Over() && ts.finished < 0 {
		ts.finished = tick
	}
	if tick%ReportEveryTicks == 0 || ts.Engine.Over() {
		ts.Reporter.Collect(ts.Engine.Snapshot())
	}
}

// Reset starts a fresh session on the current board.
func (ts *TestSim) Reset() error {
	ts.finished = -1
	ts.lastErr = nil
	return ts.Engine.Reset(ts.Rows, ts.Cols)
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Engine.CurrentTick()
}

// FinishedAt returns the tick at which the session ended, or -1.
func (ts *TestSim) FinishedAt() int {
	return ts.finished
}

// Err returns the last error reported by Tick.
func (ts *TestSim) Err() error {
	return ts.lastErr
}

// Snapshot returns the engine state.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Engine.Snapshot()
}
