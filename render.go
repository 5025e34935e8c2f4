package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"

	"github.com/zucenko/spinlines/scene"
)

// Renderer draws scene frames with two generated images: a white pixel
// stretched into lines and rectangles, and a white disc for the dots.
type Renderer struct {
	pixel *ebiten.Image
	disc  *ebiten.Image
	discR float64
}

const discRadius = 16

func NewRenderer() (*Renderer, error) {
	pixel, err := ebiten.NewImage(1, 1, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	if err := pixel.Fill(color.White); err != nil {
		return nil, err
	}

	side := 2 * discRadius
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x) + 0.5 - discRadius
			dy := float64(y) + 0.5 - discRadius
			if dx*dx+dy*dy <= discRadius*discRadius {
				img.Set(x, y, color.White)
			}
		}
	}
	disc, err := ebiten.NewImageFromImage(img, ebiten.FilterLinear)
	if err != nil {
		return nil, err
	}
	return &Renderer{pixel: pixel, disc: disc, discR: discRadius}, nil
}

// scaleColor tints a white source to c, which is alpha premultiplied.
func scaleColor(op *ebiten.DrawImageOptions, c color.RGBA) {
	if c.A == 0 {
		op.ColorM.Scale(0, 0, 0, 0)
		return
	}
	a := float64(c.A)
	op.ColorM.Scale(float64(c.R)/a, float64(c.G)/a, float64(c.B)/a, a/0xff)
}

func (r *Renderer) Line(screen *ebiten.Image, l scene.Line) {
	dx, dy := l.X2-l.X1, l.Y2-l.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, l.Thickness)
	op.GeoM.Translate(0, -l.Thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(l.X1, l.Y1)
	scaleColor(op, l.Color)
	screen.DrawImage(r.pixel, op)
}

func (r *Renderer) Rect(screen *ebiten.Image, rc scene.Rect) {
	if !rc.Visible {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rc.W, rc.H)
	op.GeoM.Translate(rc.X, rc.Y)
	scaleColor(op, rc.Color)
	screen.DrawImage(r.pixel, op)
}

func (r *Renderer) Dot(screen *ebiten.Image, d scene.Dot) {
	s := d.Radius / r.discR
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-r.discR, -r.discR)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(d.X, d.Y)
	scaleColor(op, d.Color)
	screen.DrawImage(r.disc, op)
}

// Draw paints a whole frame: background, lines, dots, avatar, hover.
func (r *Renderer) Draw(screen *ebiten.Image, f *scene.Frame) {
	screen.Fill(f.Background)
	for _, l := range f.Lines {
		r.Line(screen, l)
	}
	for _, d := range f.Dots {
		r.Dot(screen, d)
	}
	r.Rect(screen, f.Avatar)
	r.Rect(screen, f.Hover)
}
