package model

import (
	"io/ioutil"
	"math/rand"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() log.FieldLogger {
	l := log.New()
	l.Out = ioutil.Discard
	return l
}

func newTestPuzzle(t *testing.T, blocking bool) *Puzzle {
	t.Helper()
	return New(Options{
		Width:    1200,
		Height:   1200,
		GridSize: 10,
		Blocking: blocking,
	}, rand.New(rand.NewSource(7)), quietLogger())
}

func TestNewGridIsDeterministic(t *testing.T) {
	a := NewGrid(10, rand.New(rand.NewSource(42)))
	b := NewGrid(10, rand.New(rand.NewSource(42)))
	require.Len(t, a.Edges, 100)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			assert.Equal(t, a.DirectionAt(i, j), b.DirectionAt(i, j))
			assert.Equal(t, a.ColorAt(i, j), b.ColorAt(i, j))
			assert.Same(t, a.Edges[j*10+i], a.EdgeAt(i, j))
		}
	}
}

func TestNewGridSegments(t *testing.T) {
	g := NewGrid(10, rand.New(rand.NewSource(1)))
	for _, e := range g.Edges {
		ends := segmentEnds[e.Direction]
		for k, s := range e.Segments {
			assert.Equal(t, ends[k][0], s.EndX)
			assert.Equal(t, ends[k][1], s.EndY)
			assert.Equal(t, 0, s.Angle)
		}
		// one horizontal, one vertical half-edge
		assert.Equal(t, 0, e.Segments[0].EndX*e.Segments[1].EndX+e.Segments[0].EndY*e.Segments[1].EndY)
		assert.Equal(t, uint8(0xff), e.Color.A)
	}
}

func TestEdgeAtOutside(t *testing.T) {
	g := NewGrid(10, rand.New(rand.NewSource(1)))
	assert.Nil(t, g.EdgeAt(-1, 0))
	assert.Nil(t, g.EdgeAt(0, 10))
	assert.Equal(t, Direction(-1), g.DirectionAt(10, 10))
}

func TestRotationClock(t *testing.T) {
	g := NewGrid(10, rand.New(rand.NewSource(3)))
	c := NewRotationClock(g, 1000)

	assert.False(t, c.Tick(0))
	assert.False(t, c.Tick(999))
	assert.True(t, c.Tick(1000))
	assert.Equal(t, 90, g.Angle())

	// same window rotates at most once
	assert.False(t, c.Tick(1500))
	assert.False(t, c.Tick(1999))
	assert.Equal(t, 90, g.Angle())

	assert.True(t, c.Tick(2000))
	assert.True(t, c.Tick(3000))
	assert.True(t, c.Tick(4000))
	assert.Equal(t, 0, g.Angle())
	for _, e := range g.Edges {
		for _, s := range e.Segments {
			assert.Equal(t, 0, s.Angle)
		}
	}
}

func TestRotationClockLockstep(t *testing.T) {
	g := NewGrid(10, rand.New(rand.NewSource(3)))
	c := NewRotationClock(g, 0)
	require.Equal(t, int64(DefaultRotationInterval), c.Interval)

	now := int64(0)
	for step := 1; step <= 7; step++ {
		now += 1000 + int64(step)
		require.True(t, c.Tick(now))
		for _, e := range g.Edges {
			for _, s := range e.Segments {
				assert.Equal(t, (step*90)%360, s.Angle)
			}
		}
		assert.Equal(t, now, c.LastTick())
	}
}

func TestAvatarStartsBottomLeft(t *testing.T) {
	p := newTestPuzzle(t, true)
	a := p.Avatar()
	assert.Equal(t, 0, a.Col)
	assert.Equal(t, 9, a.Row)
	x, y := p.AvatarPosition()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 1000.0, y)
}

func TestNonAdjacentNeverMoves(t *testing.T) {
	for _, blocking := range []bool{true, false} {
		p := newTestPuzzle(t, blocking)
		for angleStep := 0; angleStep < 4; angleStep++ {
			for i := 0; i < 10; i++ {
				for j := 0; j < 10; j++ {
					di, dj := i-0, j-9
					if di*di+dj*dj == 1 {
						continue
					}
					assert.False(t, p.controller.TryMove(i, j), "(%d,%d)", i, j)
					assert.Equal(t, Avatar{Col: 0, Row: 9}, p.Avatar())
				}
			}
			p.grid.Rotate(RotationStep)
		}
	}
}

func TestDistanceTwoNeverMoves(t *testing.T) {
	p := newTestPuzzle(t, false)
	assert.Equal(t, NotAdjacent, p.Click(2, 9))
	assert.Equal(t, NotAdjacent, p.Click(1, 8))
	assert.Equal(t, NotAdjacent, p.Click(0, 9))
	assert.Equal(t, Avatar{Col: 0, Row: 9}, p.Avatar())
}

func TestOutOfBounds(t *testing.T) {
	p := newTestPuzzle(t, false)
	assert.Equal(t, OutOfBounds, p.Click(-1, 9))
	assert.Equal(t, OutOfBounds, p.Click(0, 10))
	assert.Equal(t, Avatar{Col: 0, Row: 9}, p.Avatar())
}

func TestBlockingFollowsAngle(t *testing.T) {
	tests := []struct {
		name   string
		angle  int
		target [2]int
		want   MoveResult
	}{
		{"east at 0", 0, [2]int{1, 9}, Blocked},
		{"east at 90", 90, [2]int{1, 9}, Moved},
		{"east at 180", 180, [2]int{1, 9}, Blocked},
		{"east at 270", 270, [2]int{1, 9}, Moved},
		{"north at 0", 0, [2]int{0, 8}, Moved},
		{"north at 90", 90, [2]int{0, 8}, Blocked},
		{"north at 180", 180, [2]int{0, 8}, Moved},
		{"north at 270", 270, [2]int{0, 8}, Blocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPuzzle(t, true)
			p.SetAngle(tt.angle)
			got := p.Click(tt.target[0], tt.target[1])
			assert.Equal(t, tt.want, got)
			a := p.Avatar()
			if tt.want == Moved {
				assert.Equal(t, tt.target, [2]int{a.Col, a.Row})
				assert.Equal(t, 1, a.Moves)
			} else {
				assert.Equal(t, [2]int{0, 9}, [2]int{a.Col, a.Row})
				assert.Equal(t, 0, a.Moves)
			}
		})
	}
}

func TestBlockingIsSymmetric(t *testing.T) {
	p := newTestPuzzle(t, true)
	p.Place(5, 5, 0)
	for _, angle := range []int{0, 90, 180, 270} {
		p.SetAngle(angle)
		assert.Equal(t, p.Check(5, 4), p.Check(5, 6), "angle %d", angle)
		assert.Equal(t, p.Check(4, 5), p.Check(6, 5), "angle %d", angle)
	}
}

func TestAdjacentSucceedsIffPermitted(t *testing.T) {
	p := newTestPuzzle(t, true)
	now := int64(0)
	for n := 0; n < 40; n++ {
		a := p.Avatar()
		edge := p.Grid().EdgeAt(a.Col, a.Row)
		targets := []struct {
			d    Direction
			i, j int
		}{
			{East, a.Col + 1, a.Row},
			{North, a.Col, a.Row - 1},
			{West, a.Col - 1, a.Row},
			{South, a.Col, a.Row + 1},
		}
		for _, tg := range targets {
			if !p.Grid().Contains(tg.i, tg.j) {
				continue
			}
			want := edge.Permits(tg.d)
			assert.Equal(t, want, p.Check(tg.i, tg.j) == Moved)
		}
		for _, tg := range targets {
			if p.Grid().Contains(tg.i, tg.j) && p.Click(tg.i, tg.j) == Moved {
				break
			}
		}
		now += 1000
		p.Advance(now)
	}
}

func TestWithoutBlockingEveryNeighbourIsReachable(t *testing.T) {
	p := newTestPuzzle(t, false)
	assert.True(t, p.controller.TryMove(1, 9))
	assert.True(t, p.controller.TryMove(1, 8))
	assert.True(t, p.controller.TryMove(0, 8))
	assert.True(t, p.controller.TryMove(0, 9))
	assert.Equal(t, 4, p.Avatar().Moves)
}

func TestLayout(t *testing.T) {
	l := NewLayout(1600, 1200, 10)
	assert.Equal(t, 100.0, l.CellSize)
	assert.Equal(t, 300.0, l.OffsetX)
	assert.Equal(t, 100.0, l.OffsetY)
	assert.InDelta(t, 60.0, l.LineLength, 1e-9)
	assert.InDelta(t, 6.0, l.LineThickness, 1e-9)
	assert.InDelta(t, 6.0, l.DotSize, 1e-9)
	assert.InDelta(t, 10.0, l.Padding, 1e-9)

	i, j := l.CellAt(350, 150)
	assert.Equal(t, [2]int{0, 0}, [2]int{i, j})
	i, j = l.CellAt(299, 99)
	assert.Equal(t, [2]int{-1, -1}, [2]int{i, j})
	x, y := l.CellOrigin(3, 4)
	assert.Equal(t, [2]float64{600, 500}, [2]float64{x, y})
}

func TestHover(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		visible  bool
		col, row int
	}{
		{"first cell", 150, 150, true, 0, 0},
		{"inner cell", 950, 950, true, 8, 8},
		{"last column", 1050, 150, false, 0, 0},
		{"last row", 150, 1050, false, 0, 0},
		{"outside left", 50, 150, false, 0, 0},
		{"outside below", 150, 1150, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPuzzle(t, true)
			p.PointerMove(tt.x, tt.y)
			c, r, ok := p.Hover()
			assert.Equal(t, tt.visible, ok)
			if tt.visible {
				assert.Equal(t, [2]int{tt.col, tt.row}, [2]int{c, r})
			}
		})
	}
}

func TestHoverClearsWhenLeaving(t *testing.T) {
	p := newTestPuzzle(t, true)
	p.PointerMove(150, 150)
	_, _, ok := p.Hover()
	require.True(t, ok)
	p.PointerMove(5, 5)
	_, _, ok = p.Hover()
	assert.False(t, ok)
}

func TestPointerDownMovesAvatar(t *testing.T) {
	p := newTestPuzzle(t, true)
	// north of the start cell, permitted at angle 0
	assert.Equal(t, Moved, p.PointerDown(150, 950))
	assert.Equal(t, Avatar{Col: 0, Row: 8, Moves: 1}, p.Avatar())
	x, y := p.AvatarPosition()
	assert.Equal(t, [2]float64{100, 900}, [2]float64{x, y})

	assert.Equal(t, OutOfBounds, p.PointerDown(50, 950))
	assert.Equal(t, Blocked, p.PointerDown(250, 950))
}

func TestSnapshot(t *testing.T) {
	p := newTestPuzzle(t, true)
	p.Advance(1000)
	p.PointerMove(150, 150)
	s := p.Snapshot()
	assert.Equal(t, 90, s.Angle)
	assert.Equal(t, int64(1000), s.LastTick)
	assert.Equal(t, [2]int{0, 9}, [2]int{s.Col, s.Row})
	assert.True(t, s.Hovering)
	assert.Equal(t, [4]bool{false, true, false, true}, s.Permitted)
}

func TestPlaceIgnoresOutside(t *testing.T) {
	p := newTestPuzzle(t, true)
	p.Place(12, 3, 5)
	assert.Equal(t, Avatar{Col: 0, Row: 9}, p.Avatar())
	p.Place(4, 3, 5)
	assert.Equal(t, Avatar{Col: 4, Row: 3, Moves: 5}, p.Avatar())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "W", West.Name())
	assert.Equal(t, "N/A(9)", Direction(9).Name())
	assert.Equal(t, "BLOCKED", Blocked.Name())
	assert.Equal(t, "N/A(0)", MoveResult(0).Name())
}
