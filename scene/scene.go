// Package scene projects puzzle state onto flat drawing primitives. It knows
// nothing about the graphics library that ends up drawing them.
package scene

import (
	"image/color"

	"github.com/zucenko/spinlines/model"
)

var (
	Background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	DotColor   = color.RGBA{0, 0, 0, 0xff}
	AvatarFill = color.RGBA{0, 0, 0, 0xff}
	// light blue at 30%, premultiplied
	HoverFill = color.RGBA{0x34, 0x41, 0x45, 0x4d}
)

type Line struct {
	X1, Y1, X2, Y2 float64
	Thickness      float64
	Color          color.RGBA
}

type Dot struct {
	X, Y, Radius float64
	Color        color.RGBA
}

type Rect struct {
	X, Y, W, H float64
	Color      color.RGBA
	Visible    bool
}

type Frame struct {
	Background color.RGBA
	Lines      []Line
	Dots       []Dot
	Avatar     Rect
	Hover      Rect
}

// Bridge keeps one Frame and refreshes it in place every call.
type Bridge struct {
	frame Frame
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Project writes the current state of p into the bridge's frame and returns
// it. The frame is only valid until the next call.
func (b *Bridge) Project(p *model.Puzzle) *Frame {
	l := p.Layout()
	g := p.Grid()
	f := &b.frame
	f.Background = Background

	n := g.Size * g.Size
	if cap(f.Lines) < 2*n {
		f.Lines = make([]Line, 0, 2*n)
		f.Dots = make([]Dot, 0, n)
	}
	f.Lines = f.Lines[:0]
	f.Dots = f.Dots[:0]

	for i := 0; i < g.Size; i++ {
		for j := 0; j < g.Size; j++ {
			x, y := l.CellOrigin(i, j)
			e := g.EdgeAt(i, j)
			for _, s := range e.Segments {
				ex, ey := rotate(s.EndX, s.EndY, s.Angle)
				f.Lines = append(f.Lines, Line{
					X1:        x,
					Y1:        y,
					X2:        x + float64(ex)*l.LineLength,
					Y2:        y + float64(ey)*l.LineLength,
					Thickness: l.LineThickness,
					Color:     e.Color,
				})
			}
		}
	}
	for i := 0; i < g.Size; i++ {
		for j := 0; j < g.Size; j++ {
			x, y := l.CellOrigin(i, j)
			f.Dots = append(f.Dots, Dot{X: x, Y: y, Radius: l.DotSize, Color: DotColor})
		}
	}

	ax, ay := p.AvatarPosition()
	f.Avatar = Rect{
		X:       ax + l.Padding,
		Y:       ay + l.Padding,
		W:       l.CellSize - 2*l.Padding,
		H:       l.CellSize - 2*l.Padding,
		Color:   AvatarFill,
		Visible: true,
	}

	hc, hr, ok := p.Hover()
	f.Hover = Rect{W: l.CellSize, H: l.CellSize, Color: HoverFill, Visible: ok}
	if ok {
		f.Hover.X, f.Hover.Y = l.CellOrigin(hc, hr)
	}
	return f
}

// rotate turns a unit vector clockwise on screen by deg, a multiple of 90.
func rotate(x, y, deg int) (int, int) {
	for k := (((deg / 90) % 4) + 4) % 4; k > 0; k-- {
		x, y = -y, x
	}
	return x, y
}
