package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Snake-Sense/internal/config"
	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
	"github.com/Garsondee/Snake-Sense/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snake-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	fs := flag.NewFlagSet("snake-term", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])
	if err := cfg.Validate(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	geometry := term.Geometry(screen)
	rows, cols, err := geometry()
	if err != nil {
		return fmt.Errorf("terminal too small: %w", err)
	}

	eng, err := game.NewEngine(rows, cols, cfg.EngineOptions(game.NewSimLog(cfg.Verbose))...)
	if err != nil {
		return err
	}
	sess := session.New(eng,
		session.WithAutoPilot(cfg.AutoPilot),
		session.WithGeometry(geometry),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := term.Run(ctx, screen, sess, cfg.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
