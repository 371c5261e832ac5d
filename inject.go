package tabletop

import "github.com/hajimehoshi/ebiten/v2"

type eventKind uint8

const (
	eventPress eventKind = iota
	eventMove
	eventRelease
	eventKey
	eventKeyDown
	eventKeyUp
	eventScroll
)

// syntheticEvent is one queued input event. Coordinates are in screen space,
// which is also world space since the scene has no camera.
type syntheticEvent struct {
	kind   eventKind
	pos    Vec2
	button MouseButton
	key    ebiten.Key
	dy     float64
}

// InjectPress queues a left-button press at (x, y). Each queued event is
// consumed by one Update in place of real input.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventPress, pos: Vec2{x, y}, button: MouseButtonLeft})
}

// InjectRightClick queues a right-button press and release at (x, y).
// Consumes two frames.
func (s *Scene) InjectRightClick(x, y float64) {
	p := Vec2{x, y}
	s.injectQueue = append(s.injectQueue,
		syntheticEvent{kind: eventPress, pos: p, button: MouseButtonRight},
		syntheticEvent{kind: eventRelease, pos: p, button: MouseButtonRight},
	)
}

// InjectMove queues a pointer move to (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventMove, pos: Vec2{x, y}})
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventRelease, pos: Vec2{x, y}, button: MouseButtonLeft})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release in the same frame.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventKey, key: k})
}

// InjectKeyDown queues a key press without a release, for holding a
// modifier across later events.
func (s *Scene) InjectKeyDown(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventKeyDown, key: k})
}

// InjectKeyUp queues a key release.
func (s *Scene) InjectKeyUp(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventKeyUp, key: k})
}

// InjectScroll queues a wheel movement.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: eventScroll, dy: dy})
}

// Injecting reports whether synthetic events are still queued.
func (s *Scene) Injecting() bool { return len(s.injectQueue) > 0 }

// processInjected pops one event and dispatches it. Returns true if an event
// was consumed (real input should be skipped).
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case eventPress:
		if evt.pos != s.pointer {
			s.HandleMouseMove(evt.pos)
		}
		s.HandleMouseDown(evt.pos, evt.button)
	case eventMove:
		s.HandleMouseMove(evt.pos)
	case eventRelease:
		if evt.pos != s.pointer {
			s.HandleMouseMove(evt.pos)
		}
		s.HandleMouseUp(evt.pos, evt.button)
	case eventKey:
		s.HandleKeyDown(evt.key)
		s.HandleKeyUp(evt.key)
	case eventKeyDown:
		s.HandleKeyDown(evt.key)
	case eventKeyUp:
		s.HandleKeyUp(evt.key)
	case eventScroll:
		s.HandleScroll(evt.dy)
	}
	return true
}
