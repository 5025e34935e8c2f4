package model

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
)

type Options struct {
	Width, Height    int
	GridSize         int
	RotationInterval int64
	Blocking         bool
}

// Puzzle owns the whole game state. The host calls PointerMove and
// PointerDown from its input handling and Advance once per frame.
type Puzzle struct {
	layout     Layout
	grid       *Grid
	clock      *RotationClock
	controller *AvatarController
	input      *InputAdapter
}

type Snapshot struct {
	Angle     int
	Col, Row  int
	Moves     int
	HoverCol  int
	HoverRow  int
	Hovering  bool
	LastTick  int64
	GridSize  int
	Blocking  bool
	Interval  int64
	AvatarX   float64
	AvatarY   float64
	Permitted [4]bool
}

func New(opts Options, rng *rand.Rand, logger log.FieldLogger) *Puzzle {
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	layout := NewLayout(opts.Width, opts.Height, opts.GridSize)
	grid := NewGrid(opts.GridSize, rng)
	controller := NewAvatarController(grid, opts.Blocking, logger)
	return &Puzzle{
		layout:     layout,
		grid:       grid,
		clock:      NewRotationClock(grid, opts.RotationInterval),
		controller: controller,
		input:      NewInputAdapter(layout, controller),
	}
}

func (p *Puzzle) Layout() Layout {
	return p.layout
}

func (p *Puzzle) Grid() *Grid {
	return p.grid
}

func (p *Puzzle) Avatar() Avatar {
	return *p.controller.Avatar
}

// AvatarPosition is the avatar's cell origin in pixels.
func (p *Puzzle) AvatarPosition() (float64, float64) {
	a := p.controller.Avatar
	return p.layout.CellOrigin(a.Col, a.Row)
}

func (p *Puzzle) Hover() (int, int, bool) {
	return p.input.Hover()
}

func (p *Puzzle) PointerMove(x, y float64) {
	p.input.PointerMove(x, y)
}

func (p *Puzzle) PointerDown(x, y float64) MoveResult {
	return p.input.PointerDown(x, y)
}

// Click moves towards a cell given in grid coordinates.
func (p *Puzzle) Click(i, j int) MoveResult {
	return p.controller.Move(i, j)
}

// CellAt maps a pointer position to grid coordinates.
func (p *Puzzle) CellAt(x, y float64) (int, int) {
	return p.layout.CellAt(x, y)
}

// Check tells what a click on (i, j) would do.
func (p *Puzzle) Check(i, j int) MoveResult {
	res, _ := p.controller.Check(i, j)
	return res
}

// Advance runs the per frame update and reports whether the grid rotated.
func (p *Puzzle) Advance(nowMs int64) bool {
	return p.clock.Tick(nowMs)
}

// SetAngle and Place overwrite state with values received from elsewhere,
// bypassing the clock and the move rules.
func (p *Puzzle) SetAngle(deg int) {
	p.grid.setAngle(deg)
}

func (p *Puzzle) Place(col, row, moves int) {
	if !p.grid.Contains(col, row) {
		return
	}
	a := p.controller.Avatar
	a.Col, a.Row, a.Moves = col, row, moves
}

func (p *Puzzle) Snapshot() Snapshot {
	a := p.controller.Avatar
	hc, hr, hovering := p.input.Hover()
	x, y := p.AvatarPosition()
	s := Snapshot{
		Angle:    p.grid.Angle(),
		Col:      a.Col,
		Row:      a.Row,
		Moves:    a.Moves,
		HoverCol: hc,
		HoverRow: hr,
		Hovering: hovering,
		LastTick: p.clock.LastTick(),
		GridSize: p.grid.Size,
		Blocking: p.controller.Blocking,
		Interval: p.clock.Interval,
		AvatarX:  x,
		AvatarY:  y,
	}
	edge := p.grid.EdgeAt(a.Col, a.Row)
	for _, d := range Directions {
		s.Permitted[d] = !p.controller.Blocking || edge.Permits(d)
	}
	return s
}
