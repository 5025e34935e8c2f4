package model

// InputAdapter turns pointer positions into hover state and move intents.
type InputAdapter struct {
	layout     Layout
	controller *AvatarController

	hoverCol, hoverRow int
	hovering           bool
}

func NewInputAdapter(layout Layout, controller *AvatarController) *InputAdapter {
	return &InputAdapter{layout: layout, controller: controller}
}

// PointerMove updates the hover cell. The last row and column never
// highlight.
func (a *InputAdapter) PointerMove(x, y float64) {
	i, j := a.layout.CellAt(x, y)
	last := a.layout.GridSize - 1
	if i >= 0 && i < last && j >= 0 && j < last {
		a.hoverCol, a.hoverRow, a.hovering = i, j, true
		return
	}
	a.hovering = false
}

func (a *InputAdapter) PointerDown(x, y float64) MoveResult {
	i, j := a.layout.CellAt(x, y)
	return a.controller.Move(i, j)
}

func (a *InputAdapter) Hover() (int, int, bool) {
	return a.hoverCol, a.hoverRow, a.hovering
}
