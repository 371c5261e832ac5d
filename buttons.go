package tabletop

// Button identifies one of the small +/-/reset buttons on decks and counters.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonIncrement
	ButtonDecrement
	ButtonReset
)

func (b Button) String() string {
	switch b {
	case ButtonIncrement:
		return "increment"
	case ButtonDecrement:
		return "decrement"
	case ButtonReset:
		return "reset"
	}
	return "none"
}

// ButtonPanel is implemented by objects that carry clickable buttons.
type ButtonPanel interface {
	// ButtonAt returns the button under the world point, or ButtonNone.
	ButtonAt(p Vec2) Button
	// Press performs the button's action.
	Press(b Button)
}

type buttonRegion struct {
	button Button
	area   HitRect
}

// buttonColumn lays out increment, decrement and reset top to bottom in a
// column of the given width starting at local (x, top), adding a sprite and a
// glyph for each to parent.
func buttonColumn(parent *Node, x, top, w, h float64) []buttonRegion {
	glyphs := [...]string{"+", "-", "R"}
	regions := make([]buttonRegion, 0, 3)
	for i, b := range [...]Button{ButtonIncrement, ButtonDecrement, ButtonReset} {
		area := HitRect{X: x, Y: top + float64(i)*h, Width: w, Height: h}
		bg := NewSprite(b.String(), nil, w-2, h-2)
		bg.Color = ColorButton
		bg.SetPosition(area.X+w/2, area.Y+h/2)
		bg.ZIndex = 10
		glyph := NewLabel(b.String()+"-glyph", glyphs[i], ColorWhite)
		bg.AddChild(glyph)
		parent.AddChild(bg)
		regions = append(regions, buttonRegion{button: b, area: area})
	}
	return regions
}

// buttonAt maps a world point into node space and finds the region under it.
func buttonAt(node *Node, regions []buttonRegion, p Vec2) Button {
	lx, ly := node.WorldToLocal(p.X, p.Y)
	for _, r := range regions {
		if r.area.Contains(lx, ly) {
			return r.button
		}
	}
	return ButtonNone
}
