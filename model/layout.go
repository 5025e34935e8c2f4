package model

import "math"

const (
	DefaultGridSize = 10
	// the grid takes 10 of 12 cell sizes along the shorter viewport side
	viewportCells = 12
)

// Layout holds the pixel metrics derived from the viewport at startup.
type Layout struct {
	Width, Height int
	GridSize      int

	CellSize      float64
	OffsetX       float64
	OffsetY       float64
	LineLength    float64
	LineThickness float64
	DotSize       float64
	Padding       float64
}

func NewLayout(width, height, gridSize int) Layout {
	cell := math.Min(float64(width), float64(height)) / viewportCells
	return Layout{
		Width:         width,
		Height:        height,
		GridSize:      gridSize,
		CellSize:      cell,
		OffsetX:       (float64(width) - float64(gridSize)*cell) / 2,
		OffsetY:       (float64(height) - float64(gridSize)*cell) / 2,
		LineLength:    cell * 0.6,
		LineThickness: cell * 0.06,
		DotSize:       cell * 0.06,
		Padding:       cell * 0.1,
	}
}

// CellAt maps a pixel to grid coordinates, which may lie outside the grid.
func (l Layout) CellAt(x, y float64) (int, int) {
	i := int(math.Floor((x - l.OffsetX) / l.CellSize))
	j := int(math.Floor((y - l.OffsetY) / l.CellSize))
	return i, j
}

// CellOrigin is the top left corner of cell (i, j).
func (l Layout) CellOrigin(i, j int) (float64, float64) {
	return l.OffsetX + float64(i)*l.CellSize, l.OffsetY + float64(j)*l.CellSize
}
