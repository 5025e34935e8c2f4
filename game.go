package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"

	"github.com/zucenko/spinlines/config"
	"github.com/zucenko/spinlines/model"
	"github.com/zucenko/spinlines/remote"
	"github.com/zucenko/spinlines/scene"
)

// PointerSource is a device that can point at and press on the grid.
type PointerSource interface {
	Position() (int, int)
	IsJustPressed() bool
}

// MouseSource is a PointerSource implementation of mouse.
type MouseSource struct{}

func (m *MouseSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseSource) IsJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// TouchSource is a PointerSource implementation of touch.
type TouchSource struct {
	ID int
}

func (t *TouchSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchSource) IsJustPressed() bool {
	return inpututil.TouchPressDuration(t.ID) == 1
}

type Game struct {
	puzzle   *model.Puzzle
	remote   *remote.Client
	bridge   *scene.Bridge
	renderer *Renderer
	hud      *HUD
	mouse    PointerSource
	log      log.FieldLogger

	Tweens map[*gween.Tween]*Action

	started      time.Time
	lastX, lastY int
	avatarDX     float64
	avatarDY     float64
	shakeX       float64
	rejectTint   float64
	disconnected bool
}

func NewGame(cfg config.Config, logger log.FieldLogger) (*Game, error) {
	w, h := cfg.Window.Width, cfg.Window.Height
	g := &Game{
		bridge:  scene.NewBridge(),
		mouse:   &MouseSource{},
		log:     logger,
		Tweens:  make(map[*gween.Tween]*Action),
		started: time.Now(),
		lastX:   -1,
		lastY:   -1,
	}

	if cfg.RemoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := remote.Dial(ctx, cfg.RemoteURL, logger)
		if err != nil {
			return nil, err
		}
		g.remote = c
		g.puzzle = remote.Mirror(c.Setup(), w, h, logger)
		logger.WithField("session", c.Setup().Session).Info("playing remote")
	} else {
		seed := cfg.Seed()
		logger.WithField("seed", seed).Info("playing local")
		g.puzzle = model.New(cfg.Options(w, h), rand.New(rand.NewSource(seed)), logger)
	}

	var err error
	if g.renderer, err = NewRenderer(); err != nil {
		return nil, err
	}
	if cfg.HUD {
		if g.hud, err = NewHUD(g.puzzle.Layout().CellSize * 0.3); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) pointerMove(x, y int) {
	if x == g.lastX && y == g.lastY {
		return
	}
	g.lastX, g.lastY = x, y
	g.puzzle.PointerMove(float64(x), float64(y))
}

func (g *Game) pointerDown(x, y int) {
	px, py := float64(x), float64(y)
	if g.remote != nil {
		i, j := g.puzzle.CellAt(px, py)
		if err := g.remote.Click(i, j); err != nil {
			g.log.Warnf("click not sent %v", err)
		}
		return
	}
	before := g.puzzle.Avatar()
	g.react(g.puzzle.PointerDown(px, py), before)
}

// react starts the cue for a move outcome. before is the avatar cell the
// move started from.
func (g *Game) react(res model.MoveResult, before model.Avatar) {
	switch res {
	case model.Moved:
		a := g.puzzle.Avatar()
		c := g.puzzle.Layout().CellSize
		g.slide(float64(before.Col-a.Col)*c, float64(before.Row-a.Row)*c)
	case model.Blocked, model.NotAdjacent:
		g.reject()
	}
}

func (g *Game) pollRemote() {
	for {
		select {
		case m, ok := <-g.remote.Messages():
			if !ok {
				if !g.disconnected {
					g.log.Warnf("remote connection lost %v", g.remote.Err())
					g.disconnected = true
				}
				return
			}
			before := g.puzzle.Avatar()
			for _, mv := range remote.Apply(g.puzzle, m) {
				g.react(mv.Result, before)
				before = g.puzzle.Avatar()
			}
		default:
			return
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.updateTweens()

	if g.remote != nil {
		g.pollRemote()
	} else {
		g.puzzle.Advance(int64(time.Since(g.started) / time.Millisecond))
	}

	x, y := g.mouse.Position()
	g.pointerMove(x, y)
	if g.mouse.IsJustPressed() {
		g.pointerDown(x, y)
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		t := &TouchSource{ID: id}
		tx, ty := t.Position()
		g.pointerMove(tx, ty)
		g.pointerDown(tx, ty)
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	f := g.bridge.Project(g.puzzle)
	f.Avatar.X += g.avatarDX + g.shakeX
	f.Avatar.Y += g.avatarDY
	if g.rejectTint > 0 {
		f.Avatar.Color.R = uint8(0xc0 * g.rejectTint)
	}
	g.renderer.Draw(screen, f)

	if g.hud != nil {
		l := g.puzzle.Layout()
		g.hud.Draw(screen, scene.Status(g.puzzle.Snapshot(), g.remote != nil), int(l.OffsetX), int(l.Padding))
	}
}

func main() {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	g, err := NewGame(cfg, log.StandardLogger())
	if err != nil {
		log.Fatal(err)
	}
	if g.remote != nil {
		defer g.remote.Close()
	}
	if err := ebiten.Run(g.update, cfg.Window.Width, cfg.Window.Height, 1, cfg.Window.Title); err != nil {
		log.Fatal(err)
	}
}
