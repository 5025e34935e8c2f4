package main

import (
	"fmt"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type HUD struct {
	face  font.Face
	panel *Nine
	size  float64
}

func NewHUD(size float64) (*HUD, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	const dpi = 72
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	panel, err := newPanelNine(8, 1)
	if err != nil {
		return nil, err
	}
	panel.R, panel.G, panel.B, panel.alpha = 0.92, 0.92, 0.92, 0.9
	return &HUD{face: face, panel: panel, size: size}, nil
}

func (h *HUD) Draw(screen *ebiten.Image, line string, x, y int) {
	bounds, _ := font.BoundString(h.face, line)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	pad := int(h.size / 2)
	h.panel.SetPosition(x, y)
	h.panel.SetSize(w+2*pad, int(h.size)+2*pad)
	h.panel.Draw(screen)
	text.Draw(screen, line, h.face, x+pad, y+pad+int(h.size*0.8), color.Black)
}
