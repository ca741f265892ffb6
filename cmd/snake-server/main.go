package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Garsondee/Snake-Sense/internal/config"
	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/server"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("snake-server", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	maxConns := fs.Int("max-conns", 64, "maximum concurrent clients")
	_ = fs.Parse(os.Args[1:])
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	rows, cols, _ := cfg.GridSize()
	eng, err := game.NewEngine(rows, cols, cfg.EngineOptions(game.NewSimLog(cfg.Verbose))...)
	if err != nil {
		log.Fatal(err)
	}
	srv := server.New(session.New(eng, session.WithAutoPilot(cfg.AutoPilot)),
		cfg.TickInterval, server.WithMaxConns(*maxConns))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("snake server listening on %s (%dx%d board)", cfg.Addr, rows, cols)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Printf("session loop: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Printf("server stopped")
}
