package model

import (
	"image/color"
	"math/rand"
)

// segmentEnds lists the two unit half-edges drawn for each direction.
var segmentEnds = map[Direction][2][2]int{
	North: {{0, -1}, {1, 0}},
	East:  {{1, 0}, {0, 1}},
	South: {{0, 1}, {-1, 0}},
	West:  {{-1, 0}, {0, -1}},
}

// NewGrid builds a size x size grid. Every cell gets a uniformly random
// direction and color drawn from rng, visiting columns first like the
// renderer does, so the same seed always yields the same grid.
func NewGrid(size int, rng *rand.Rand) *Grid {
	edges := make([]*Edge, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			d := Directions[rng.Intn(len(Directions))]
			c := color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 0xff,
			}
			edges[j*size+i] = newEdge(d, c)
		}
	}
	return &Grid{Size: size, Edges: edges}
}

func newEdge(d Direction, c color.RGBA) *Edge {
	ends := segmentEnds[d]
	e := &Edge{Direction: d, Color: c}
	for k := range e.Segments {
		e.Segments[k] = Segment{EndX: ends[k][0], EndY: ends[k][1]}
	}
	return e
}

func (g *Grid) Contains(i, j int) bool {
	return i >= 0 && i < g.Size && j >= 0 && j < g.Size
}

// EdgeAt returns the edge-pair of cell (i, j), nil outside the grid.
func (g *Grid) EdgeAt(i, j int) *Edge {
	if !g.Contains(i, j) {
		return nil
	}
	return g.Edges[j*g.Size+i]
}

func (g *Grid) ColorAt(i, j int) color.RGBA {
	if e := g.EdgeAt(i, j); e != nil {
		return e.Color
	}
	return color.RGBA{}
}

func (g *Grid) DirectionAt(i, j int) Direction {
	if e := g.EdgeAt(i, j); e != nil {
		return e.Direction
	}
	return -1
}

// Angle is the rotation shared by every segment of the grid.
func (g *Grid) Angle() int {
	return g.angle
}

// Rotate turns every segment by deg, which must be a multiple of 90.
func (g *Grid) Rotate(deg int) {
	g.setAngle(g.angle + deg)
}

func (g *Grid) setAngle(deg int) {
	deg = ((deg % 360) + 360) % 360
	g.angle = deg
	for _, e := range g.Edges {
		for k := range e.Segments {
			e.Segments[k].Angle = deg
		}
	}
}

// Permits reports whether one of the pair's segments lets the avatar leave
// the cell travelling in d. North and South pass at 0 and 180, East and West
// at 90 and 270; near and far side are not told apart.
func (e *Edge) Permits(d Direction) bool {
	for _, s := range e.Segments {
		a := s.Angle % 180
		if d.Vertical() && a == 0 {
			return true
		}
		if !d.Vertical() && a == 90 {
			return true
		}
	}
	return false
}
