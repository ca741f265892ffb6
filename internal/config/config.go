// Package config holds the runtime settings shared by the front ends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the set of knobs a front end exposes as flags.
type Config struct {
	CellSize     int           // pixels per cell (desktop), 1 for terminal
	Width        int           // viewport width in pixels
	Height       int           // viewport height in pixels
	TickInterval time.Duration // one engine step per interval
	Seed         int64         // 0 = seed from the clock
	AutoPilot    bool          // start with the greedy pilot in control
	FixedStart   bool          // spawn at (10,10) instead of the centre
	FoodRetries  int           // 0 = derive from board size
	Verbose      bool          // record per-tick SimLog entries
	Addr         string        // listen address for the server
}

// Default returns the settings used when no flags are given.
func Default() Config {
	return Config{
		CellSize:     20,
		Width:        800,
		Height:       600,
		TickInterval: 150 * time.Millisecond,
		Addr:         ":8080",
	}
}

// RegisterFlags binds the config fields to fs using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell size in pixels")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "time per engine step")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "RNG seed (0 = clock)")
	fs.BoolVar(&c.AutoPilot, "autopilot", c.AutoPilot, "start with the autopilot steering")
	fs.BoolVar(&c.FixedStart, "fixed-start", c.FixedStart, "spawn at (10,10) instead of the board centre")
	fs.IntVar(&c.FoodRetries, "food-retries", c.FoodRetries, "max random attempts per food placement (0 = auto)")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "log every move to the sim log")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address (server only)")
}

// Validate checks the settings before any engine is built.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("cell size %d: %w", c.CellSize, ErrInvalidConfig)
	}
	if c.TickInterval < time.Millisecond {
		return fmt.Errorf("tick interval %s: %w", c.TickInterval, ErrInvalidConfig)
	}
	if c.FoodRetries < 0 {
		return fmt.Errorf("food retries %d: %w", c.FoodRetries, ErrInvalidConfig)
	}
	if _, _, err := c.GridSize(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GridSize derives the board from the configured viewport.
func (c Config) GridSize() (rows, cols int, err error) {
	return game.GridSize(c.Width, c.Height, c.CellSize)
}

// Rand returns the random source for a session.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
}

// Start returns the spawn policy.
func (c Config) Start() game.StartPolicy {
	if c.FixedStart {
		return game.StartFixed
	}
	return game.StartCenter
}

// EngineOptions translates the config into engine options, logging into sl.
func (c Config) EngineOptions(sl *game.SimLog) []game.EngineOption {
	return []game.EngineOption{
		game.WithRand(c.Rand()),
		game.WithStart(c.Start()),
		game.WithFoodRetries(c.FoodRetries),
		game.WithSimLog(sl),
	}
}
