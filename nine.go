package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-patch: corners keep their size, edges and center
// stretch to fill the target rectangle.
type Nine struct {
	images         *ebiten.Image
	alpha          float64
	R, G, B, Scale float64
	// source cuts: outer top left, inner top left, inner bottom right, outer bottom right
	positions           [4][2]int
	x, y, width, height int
	targetPositions     [4][2]float64
}

// newPanelNine builds a rounded panel patch without any image asset.
func newPanelNine(radius int, scale float64) (*Nine, error) {
	side := 2*radius + 1
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	r2 := float64(radius) * float64(radius)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(clampInt(x, radius, radius)) - float64(x)
			dy := float64(clampInt(y, radius, radius)) - float64(y)
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, color.White)
			}
		}
	}
	eimg, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: eimg,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: scale,
		positions: [4][2]int{{0, 0}, {radius, radius}, {radius + 1, radius + 1}, {side, side}},
	}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0] = [2]float64{float64(n.x), float64(n.y)}
	n.targetPositions[1] = [2]float64{
		float64(n.x) + n.Scale*float64(n.positions[1][0]),
		float64(n.y) + n.Scale*float64(n.positions[1][1]),
	}
	n.targetPositions[2] = [2]float64{
		float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0]),
		float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1]),
	}
	n.targetPositions[3] = [2]float64{float64(n.x + n.width), float64(n.y + n.height)}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(
				n.positions[col][0], n.positions[row][1],
				n.positions[col+1][0], n.positions[row+1][1])
			if src.Empty() {
				continue
			}
			w := n.targetPositions[col+1][0] - n.targetPositions[col][0]
			h := n.targetPositions[row+1][1] - n.targetPositions[row][1]
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
