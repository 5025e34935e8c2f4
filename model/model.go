package model

import (
	"fmt"
	"image/color"
)

type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var Directions = [4]Direction{North, East, South, West}

func (d Direction) Name() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

// Vertical reports whether travel in d crosses rows.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// Segment is a half-edge starting at the cell corner. EndX, EndY is the unit
// end point before rotation, screen coordinates (y grows down).
type Segment struct {
	EndX, EndY int
	Angle      int
}

type Edge struct {
	Direction Direction
	Color     color.RGBA
	Segments  [2]Segment
}

type Avatar struct {
	Col, Row int
	Moves    int
}

type Grid struct {
	Size  int
	Edges []*Edge
	angle int
}
