package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 metrics.
const (
	charW = 7
	lineH = 13
)

var (
	uiFace = text.NewGoXFace(basicfont.Face7x13)

	textBright = color.RGBA{R: 225, G: 235, B: 225, A: 255}
	textDim    = color.RGBA{R: 140, G: 155, B: 140, A: 255}
	textWarn   = color.RGBA{R: 240, G: 90, B: 70, A: 255}
)

// drawText renders s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, uiFace, op)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	w, _ := text.Measure(s, uiFace, lineH)
	return int(w)
}
