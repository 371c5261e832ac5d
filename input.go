package tabletop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// mouseButtons maps Ebitengine buttons to the controller's.
var mouseButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// Update advances the scene by one tick: it steps the script, feeds one
// synthetic event or the real mouse and keyboard to the controller, then
// advances transitions by 1/TPS.
func (s *Scene) Update() error {
	if s.closed {
		return nil
	}
	s.stepScript()
	if !s.processInjected() && s.script == nil {
		s.processInput()
	}
	s.anim.Update(float32(1.0 / float64(ebiten.TPS())))
	if globalDebug && s.anim.Len() > 0 {
		s.log.Debug("transitions", "pending", s.anim.Len())
	}
	return nil
}

// processInput polls Ebitengine for this tick's edges and turns them into
// controller events.
func (s *Scene) processInput() {
	s.mods = readModifiers()

	mx, my := ebiten.CursorPosition()
	p := Vec2{float64(mx), float64(my)}
	if p != s.pointer {
		s.HandleMouseMove(p)
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			s.HandleMouseDown(p, b.btn)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			s.HandleMouseUp(p, b.btn)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		s.HandleScroll(dy)
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if modifierOf(k) == 0 {
			s.HandleKeyDown(k)
		}
	}
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if modifierOf(k) == 0 {
			s.HandleKeyUp(k)
		}
	}
	s.runeBuf = ebiten.AppendInputChars(s.runeBuf[:0])
	s.HandleChars(s.runeBuf)
}
