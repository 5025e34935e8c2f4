package main

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const tweenStep = 1.0 / 60

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start once the current tween finishes and returns the
// action for it.
func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

func (g *Game) updateTweens() {
	for t, a := range g.Tweens {
		curr, finished := t.Update(tweenStep)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

// slide eases the avatar drawable from its previous cell to the new one.
func (g *Game) slide(dx, dy float64) {
	g.avatarDX, g.avatarDY = dx, dy
	t := gween.New(1, 0, 0.12, ease.OutQuad)
	a := &Action{onChange: func(v float32) {
		g.avatarDX, g.avatarDY = dx*float64(v), dy*float64(v)
	}}
	a.addOnFinish(func() {
		g.avatarDX, g.avatarDY = 0, 0
	})
	g.Tweens[t] = a
}

// reject shakes the avatar and fades a red tint once the shake is over.
func (g *Game) reject() {
	amp := g.puzzle.Layout().Padding
	shake := gween.New(0, 1, 0.3, ease.Linear)
	a := &Action{onChange: func(v float32) {
		p := float64(v)
		g.shakeX = amp * math.Sin(p*6*math.Pi) * (1 - p)
	}}
	g.rejectTint = 1
	a.addOnFinish(func() {
		g.shakeX = 0
	})
	fade := a.next(gween.New(1, 0, 0.25, ease.InQuad))
	fade.onChange = func(v float32) {
		g.rejectTint = float64(v)
	}
	fade.addOnFinish(func() {
		g.rejectTint = 0
	})
	g.Tweens[shake] = a
}
