package model

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type MoveResult int

const (
	Moved MoveResult = iota + 1
	OutOfBounds
	NotAdjacent
	Blocked
)

func (r MoveResult) Name() string {
	switch r {
	case Moved:
		return "MOVED"
	case OutOfBounds:
		return "OUT_OF_BOUNDS"
	case NotAdjacent:
		return "NOT_ADJACENT"
	case Blocked:
		return "BLOCKED"
	default:
		return fmt.Sprintf("N/A(%d)", r)
	}
}

// AvatarController validates and executes avatar moves against the grid.
type AvatarController struct {
	Avatar   *Avatar
	Blocking bool
	grid     *Grid
	log      log.FieldLogger
}

func NewAvatarController(grid *Grid, blocking bool, logger log.FieldLogger) *AvatarController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &AvatarController{
		Avatar:   &Avatar{Col: 0, Row: grid.Size - 1},
		Blocking: blocking,
		grid:     grid,
		log:      logger,
	}
}

// Check evaluates a move to (i, j) without performing it. The direction is
// only meaningful for Moved and Blocked.
func (c *AvatarController) Check(i, j int) (MoveResult, Direction) {
	if !c.grid.Contains(i, j) {
		return OutOfBounds, -1
	}
	d, ok := step(c.Avatar.Col, c.Avatar.Row, i, j)
	if !ok {
		return NotAdjacent, -1
	}
	if c.Blocking && !c.grid.EdgeAt(c.Avatar.Col, c.Avatar.Row).Permits(d) {
		return Blocked, d
	}
	return Moved, d
}

// TryMove moves the avatar to (i, j) when the move is legal. Illegal moves
// leave the avatar where it is.
func (c *AvatarController) TryMove(i, j int) bool {
	return c.Move(i, j) == Moved
}

func (c *AvatarController) Move(i, j int) MoveResult {
	res, d := c.Check(i, j)
	entry := c.log.WithFields(log.Fields{
		"fromCol": c.Avatar.Col,
		"fromRow": c.Avatar.Row,
		"col":     i,
		"row":     j,
		"angle":   c.grid.Angle(),
		"result":  res.Name(),
	})
	if res != Moved {
		entry.Debug("move ignored")
		return res
	}
	entry.WithField("dir", d.Name()).Debug("move")
	c.Avatar.Col = i
	c.Avatar.Row = j
	c.Avatar.Moves++
	return res
}

// step returns the direction from (fc, fr) to (tc, tr) when they are one
// orthogonal step apart.
func step(fc, fr, tc, tr int) (Direction, bool) {
	dc, dr := tc-fc, tr-fr
	switch {
	case dr == 0 && dc == 1:
		return East, true
	case dr == 0 && dc == -1:
		return West, true
	case dc == 0 && dr == 1:
		return South, true
	case dc == 0 && dr == -1:
		return North, true
	}
	return -1, false
}
