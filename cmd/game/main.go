package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Snake-Sense/internal/config"
	"github.com/Garsondee/Snake-Sense/internal/ui"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("snake", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	g, err := ui.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	rows, cols, _ := cfg.GridSize()
	w, h := ui.WindowSize(cfg, rows, cols)

	ebiten.SetWindowTitle("Snake Sense")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
