package tabletop

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestContainsPointUsesHitShape(t *testing.T) {
	c := NewCounter(nil)
	c.SetPosition(Vec2{100, 100})

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"body", Vec2{100, 100}, true},
		{"button column", Vec2{180, 80}, true},
		{"past the buttons", Vec2{200, 100}, false},
		{"below", Vec2{100, 160}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestContainsPointRotated(t *testing.T) {
	c := NewCard(nil, nil)
	c.SetPosition(Vec2{100, 100})
	// 64x96 upright; a quarter turn lays it 96 wide and 64 tall.
	if !c.ContainsPoint(Vec2{100, 140}) {
		t.Fatal("upright card should reach 40px below its centre")
	}
	c.SetRotation(90)
	if c.ContainsPoint(Vec2{100, 140}) {
		t.Error("rotated card should no longer reach 40px below its centre")
	}
	if !c.ContainsPoint(Vec2{140, 100}) {
		t.Error("rotated card should reach 40px right of its centre")
	}
}

func TestModifierOf(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want KeyModifiers
	}{
		{ebiten.KeyShiftLeft, ModShift},
		{ebiten.KeyShiftRight, ModShift},
		{ebiten.KeyControlLeft, ModCtrl},
		{ebiten.KeyAltRight, ModAlt},
		{ebiten.KeyMetaLeft, ModMeta},
		{ebiten.KeyA, 0},
		{ebiten.KeyEnter, 0},
	}
	for _, tt := range tests {
		if got := modifierOf(tt.key); got != tt.want {
			t.Errorf("modifierOf(%v) = %b, want %b", tt.key, got, tt.want)
		}
	}
}

func TestModifiersAccumulate(t *testing.T) {
	s := newTestScene()
	s.HandleKeyDown(ebiten.KeyShiftLeft)
	s.HandleKeyDown(ebiten.KeyControlRight)
	if s.mods != ModShift|ModCtrl {
		t.Errorf("mods = %b, want shift|ctrl", s.mods)
	}
	s.HandleKeyUp(ebiten.KeyShiftLeft)
	if s.mods != ModCtrl {
		t.Errorf("mods = %b after shift up, want ctrl", s.mods)
	}
}

func TestMouseButtonMapping(t *testing.T) {
	want := map[ebiten.MouseButton]MouseButton{
		ebiten.MouseButtonLeft:   MouseButtonLeft,
		ebiten.MouseButtonRight:  MouseButtonRight,
		ebiten.MouseButtonMiddle: MouseButtonMiddle,
	}
	if len(mouseButtons) != len(want) {
		t.Fatalf("mapped %d buttons, want %d", len(mouseButtons), len(want))
	}
	for _, b := range mouseButtons {
		if want[b.eb] != b.btn {
			t.Errorf("ebiten button %v maps to %v, want %v", b.eb, b.btn, want[b.eb])
		}
	}
}

func TestMiddleButtonIgnored(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	s.HandleMouseDown(Vec2{100, 100}, MouseButtonMiddle)
	s.HandleMouseUp(Vec2{100, 100}, MouseButtonMiddle)
	if s.IsSelected(c) || c.IsFaceUp() {
		t.Error("middle button should do nothing")
	}
}
