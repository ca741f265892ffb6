package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSetup is returned by Load when an explicit setup breaks a board invariant.
var ErrInvalidSetup = errors.New("invalid engine setup")

// Status is the session state machine: Running until a fatal tick, then GameOver
// until the next Reset.
type Status int

const (
	Running Status = iota
	GameOver
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StartPolicy selects where a fresh snake spawns on Reset.
type StartPolicy int

const (
	StartCenter StartPolicy = iota // board centre
	StartFixed                     // FixedStart, or centre when it does not fit
)

// FixedStart is the spawn cell used by StartFixed.
var FixedStart = Cell{Row: 10, Col: 10}

// TickResult describes what one Tick did.
type TickResult struct {
	Tick  int
	Head  Cell // proposed head for this tick
	Moved bool
	Ate   bool
	Died  bool
	Cause DeathCause
}

// Setup is an explicit board state installed by Load.
// Rows and Cols of zero keep the engine's current board.
type Setup struct {
	Rows    int
	Cols    int
	Snake   []Cell // head first
	Heading Direction
	Food    Cell
	Score   int
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithRand injects the random source used for headings and food placement.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSimLog routes engine events into sl.
func WithSimLog(sl *SimLog) EngineOption {
	return func(e *Engine) {
		e.log = sl
	}
}

// WithStart selects the spawn policy.
func WithStart(p StartPolicy) EngineOption {
	return func(e *Engine) {
		e.start = p
	}
}

// WithFoodRetries caps rejection-sampling attempts per food placement.
func WithFoodRetries(n int) EngineOption {
	return func(e *Engine) {
		e.foodRetries = n
	}
}

// WithSessionIDs overrides the session id generator (uuid by default).
func WithSessionIDs(next func() string) EngineOption {
	return func(e *Engine) {
		if next != nil {
			e.newID = next
		}
	}
}

// Engine is the authoritative game state. All mutation goes through its
// methods and it is not safe for concurrent use: one goroutine owns it.
type Engine struct {
	rows, cols int
	snake      *Snake
	heading    Direction // direction the next tick moves in
	moved      Direction // direction of the last completed move
	food       Cell
	score      int
	status     Status
	cause      DeathCause
	tick       int
	session    string

	rng         *rand.Rand
	placer      *FoodPlacer
	start       StartPolicy
	foodRetries int
	log         *SimLog
	newID       func() string

	ticking bool
}

// NewEngine builds an engine and starts the first session on a rows x cols board.
func NewEngine(rows, cols int, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- game only
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	e.placer = NewFoodPlacer(e.rng, e.foodRetries)
	if err := e.Reset(rows, cols); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards the current session and starts a new one on a rows x cols
// board: single-cell snake at the start cell, random heading, fresh food,
// zero score, Running.
func (e *Engine) Reset(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("reset %dx%d: %w", rows, cols, ErrInvalidGeometry)
	}
	e.rows, e.cols = rows, cols
	e.snake = NewSnake(e.startCell())
	e.heading = AllDirections[e.rng.Intn(len(AllDirections))]
	e.moved = e.heading
	e.score = 0
	e.tick = 0
	e.status = Running
	e.cause = CauseNone
	e.session = e.newID()

	food, err := e.placer.Place(e.snake.Occupied(), rows, cols)
	if err != nil {
		e.end(CauseGridFull)
		return fmt.Errorf("reset %dx%d: %w", rows, cols, err)
	}
	e.food = food
	e.emit("--", "session", "reset",
		fmt.Sprintf("board %dx%d start %s heading %s food %s", rows, cols, e.snake.Head(), e.heading, e.food), 0)
	return nil
}

// Load installs an explicit state on the board, starting a new Running session.
// The body must be non-empty, in bounds and free of duplicates; food must be
// in bounds and off the body.
func (e *Engine) Load(s Setup) error {
	rows, cols := e.rows, e.cols
	if s.Rows != 0 || s.Cols != 0 {
		rows, cols = s.Rows, s.Cols
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("load %dx%d: %w", rows, cols, ErrInvalidGeometry)
	}
	if err := validateSetup(s, rows, cols); err != nil {
		return err
	}
	e.rows, e.cols = rows, cols
	e.snake = NewSnake(s.Snake...)
	e.heading = s.Heading
	e.moved = s.Heading
	e.food = s.Food
	e.score = s.Score
	e.tick = 0
	e.status = Running
	e.cause = CauseNone
	e.session = e.newID()
	e.emit("--", "session", "load",
		fmt.Sprintf("board %dx%d len=%d heading %s food %s", rows, cols, e.snake.Len(), e.heading, e.food),
		float64(e.snake.Len()))
	return nil
}

func validateSetup(s Setup, rows, cols int) error {
	if len(s.Snake) == 0 {
		return fmt.Errorf("empty snake: %w", ErrInvalidSetup)
	}
	if !s.Heading.Valid() {
		return fmt.Errorf("heading %d: %w", s.Heading, ErrInvalidSetup)
	}
	if s.Score < 0 {
		return fmt.Errorf("score %d: %w", s.Score, ErrInvalidSetup)
	}
	seen := make(map[Cell]struct{}, len(s.Snake))
	for _, c := range s.Snake {
		if !c.InBounds(rows, cols) {
			return fmt.Errorf("snake cell %s outside %dx%d: %w", c, rows, cols, ErrInvalidSetup)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("snake overlaps itself at %s: %w", c, ErrInvalidSetup)
		}
		seen[c] = struct{}{}
	}
	if !s.Food.InBounds(rows, cols) {
		return fmt.Errorf("food %s outside %dx%d: %w", s.Food, rows, cols, ErrInvalidSetup)
	}
	if _, onSnake := seen[s.Food]; onSnake {
		return fmt.Errorf("food %s on snake: %w", s.Food, ErrInvalidSetup)
	}
	return nil
}

func (e *Engine) startCell() Cell {
	center := Cell{Row: e.rows / 2, Col: e.cols / 2}
	if e.start == StartFixed && FixedStart.InBounds(e.rows, e.cols) {
		return FixedStart
	}
	return center
}

// RequestDirection asks for a new heading, applied on the next tick.
// It is ignored once the game is over, and a reversal of the last travelled
// direction is rejected while the body is longer than one cell. Checking
// against the last move rather than the pending heading means two quick
// requests between ticks cannot fold the snake back onto its neck.
func (e *Engine) RequestDirection(d Direction) bool {
	if e.status != Running || !d.Valid() {
		return false
	}
	if e.snake.Len() > 1 && d == e.moved.Opposite() {
		e.emit("input", "input", "rejected",
			fmt.Sprintf("%s reverses %s", d, e.moved), 0)
		return false
	}
	if d != e.heading {
		e.emit("input", "input", "direction", fmt.Sprintf("%s → %s", e.heading, d), 0)
		e.heading = d
	}
	return true
}

// Tick advances the session by one step. It is a no-op after game over and
// while another Tick is in progress. The returned error is non-nil only when
// food could not be re-placed (ErrGridFull); the session is then over.
func (e *Engine) Tick() (TickResult, error) {
	if e.status != Running || e.ticking {
		return TickResult{Tick: e.tick}, nil
	}
	e.ticking = true
	defer func() { e.ticking = false }()

	e.tick++
	head := e.snake.ProposeHead(e.heading)
	res := TickResult{Tick: e.tick, Head: head}

	if cause := Collide(head, e.snake.body, e.rows, e.cols); cause != CauseNone {
		e.end(cause)
		res.Died = true
		res.Cause = cause
		return res, nil
	}

	grow := head == e.food
	e.snake.Advance(head, grow)
	e.moved = e.heading
	res.Moved = true
	e.emitVerbose("snake", "move", "position", head.String(), float64(e.snake.Len()))

	if !grow {
		return res, nil
	}
	e.score++
	res.Ate = true
	e.emit("snake", "move", "eat", fmt.Sprintf("head %s len=%d", head, e.snake.Len()), float64(e.score))

	food, err := e.placer.Place(e.snake.Occupied(), e.rows, e.cols)
	if err != nil {
		e.end(CauseGridFull)
		res.Died = true
		res.Cause = CauseGridFull
		return res, fmt.Errorf("tick %d: %w", e.tick, err)
	}
	e.food = food
	e.emit("--", "food", "placed", food.String(), float64(head.Manhattan(food)))
	return res, nil
}

func (e *Engine) end(cause DeathCause) {
	e.status = GameOver
	e.cause = cause
	e.emit("snake", "state", "game_over",
		fmt.Sprintf("cause=%s score=%d len=%d", cause, e.score, e.snake.Len()), float64(e.score))
}

func (e *Engine) emit(actor, category, key, value string, num float64) {
	if e.log == nil {
		return
	}
	e.log.Add(e.tick, actor, category, key, value, num)
}

func (e *Engine) emitVerbose(actor, category, key, value string, num float64) {
	if e.log == nil {
		return
	}
	e.log.AddVerbose(e.tick, actor, category, key, value, num)
}

// --- Accessors ---

func (e *Engine) Rows() int { return e.rows }
func (e *Engine) Cols() int { return e.cols }
func (e *Engine) Score() int { return e.score }
func (e *Engine) Status() Status { return e.status }
func (e *Engine) Cause() DeathCause { return e.cause }
func (e *Engine) Heading() Direction { return e.heading }
func (e *Engine) LastMove() Direction { return e.moved }
func (e *Engine) Food() Cell { return e.food }
func (e *Engine) Len() int { return e.snake.Len() }
func (e *Engine) Head() Cell { return e.snake.Head() }
func (e *Engine) SnakeCells() []Cell { return e.snake.Cells() }
func (e *Engine) CurrentTick() int { return e.tick }
func (e *Engine) Session() string { return e.session }
func (e *Engine) SimLog() *SimLog { return e.log }
func (e *Engine) Over() bool { return e.status == GameOver }

// Snapshot copies the renderer-facing state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Session: e.session,
		Tick:    e.tick,
		Rows:    e.rows,
		Cols:    e.cols,
		Snake:   e.snake.Cells(),
		Food:    e.food,
		Score:   e.score,
		Status:  e.status,
		Heading: e.heading,
		Cause:   e.cause,
	}
}

// Snapshot is a read-only copy of the engine state for renderers.
type Snapshot struct {
	Session string
	Tick    int
	Rows    int
	Cols    int
	Snake   []Cell // head first
	Food    Cell
	Score   int
	Status  Status
	Heading Direction
	Cause   DeathCause
}

// Head returns the head cell, or the zero cell for an empty snapshot.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// SnakeSet returns the snake cells as a set.
func (s Snapshot) SnakeSet() map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(s.Snake))
	for _, c := range s.Snake {
		set[c] = struct{}{}
	}
	return set
}

// IsSnake reports whether c is part of the snake.
func (s Snapshot) IsSnake(c Cell) bool {
	for _, b := range s.Snake {
		if b == c {
			return true
		}
	}
	return false
}

// Over reports whether the snapshot was taken after game over.
func (s Snapshot) Over() bool {
	return s.Status == GameOver
}
