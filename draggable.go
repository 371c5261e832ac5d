package tabletop

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/tanema/gween/ease"
)

// HighlightScale is the factor applied to a highlighted object's scale.
const HighlightScale = 1.05

const (
	rotateDuration       = 0.2
	rotateSmoothDuration = 0.08
)

// Kind identifies the concrete type behind an Object.
type Kind uint8

const (
	KindCard Kind = iota
	KindDeck
	KindRack
	KindTable
	KindCounter
	KindToken
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindDeck:
		return "deck"
	case KindRack:
		return "rack"
	case KindTable:
		return "table"
	case KindCounter:
		return "counter"
	case KindToken:
		return "token"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Object is anything the scene can place, select and drag.
type Object interface {
	// Base returns the shared draggable state.
	Base() *Draggable
	// Kind reports the concrete type.
	Kind() Kind
	// StartDragging marks the object as being dragged. Holders also release
	// their cards.
	StartDragging()
	// Clone returns an independent copy with a fresh ID.
	Clone() Object
}

// objectIDs issues process-wide object identifiers.
var objectIDs atomic.Uint64

func nextObjectID() uint64 {
	return objectIDs.Add(1)
}

// Draggable is the state every Object embeds: geometry, drag bookkeeping and
// highlight.
type Draggable struct {
	ID   uint64
	Node *Node

	size        Vec2
	rotation    float64 // degrees, the target of any rotation in flight
	scale       float64 // scale without the highlight factor
	draggable   bool
	dragging    bool
	dragOffset  Vec2
	originalPos Vec2

	highlight *Node
	anim      *Animator
}

func newDraggable(name string, w, h float64) Draggable {
	id := nextObjectID()
	return Draggable{
		ID:        id,
		Node:      NewContainer(fmt.Sprintf("%s-%d", name, id)),
		size:      Vec2{w, h},
		scale:     1,
		draggable: true,
	}
}

// Base returns d. Concrete objects get it through embedding.
func (d *Draggable) Base() *Draggable { return d }

// SetAnimator sets the animator used for this object's transitions. A nil
// animator applies transitions immediately.
func (d *Draggable) SetAnimator(a *Animator) { d.anim = a }

// Animator returns the object's animator (possibly nil).
func (d *Draggable) Animator() *Animator { return d.anim }

// Size returns the object's unscaled width and height.
func (d *Draggable) Size() Vec2 { return d.size }

// Position returns the object's position in its parent's space.
func (d *Draggable) Position() Vec2 { return Vec2{d.Node.X, d.Node.Y} }

// SetPosition places the object immediately.
func (d *Draggable) SetPosition(p Vec2) { d.Node.SetPosition(p.X, p.Y) }

// WorldPosition returns the object's origin in world space.
func (d *Draggable) WorldPosition() Vec2 {
	if d.Node.Parent == nil {
		return d.Position()
	}
	x, y := d.Node.Parent.LocalToWorld(d.Node.X, d.Node.Y)
	return Vec2{x, y}
}

// Rotation returns the logical rotation in degrees (the target of any
// rotation still animating).
func (d *Draggable) Rotation() float64 { return d.rotation }

// SetRotation rotates the object immediately.
func (d *Draggable) SetRotation(deg float64) {
	d.rotation = deg
	d.Node.SetRotation(degToRad(deg))
}

// Scale returns the object's scale without the highlight factor.
func (d *Draggable) Scale() float64 { return d.scale }

// SetScale sets the object's scale immediately, keeping the highlight factor
// if the object is highlighted.
func (d *Draggable) SetScale(s float64) {
	d.scale = s
	ds := d.displayScale()
	d.Node.SetScale(ds, ds)
}

func (d *Draggable) displayScale() float64 {
	if d.highlight != nil {
		return d.scale * HighlightScale
	}
	return d.scale
}

// ContainsPoint reports whether the world point lies within the object's box.
// The point is taken into the object's local space and tested against the
// node's HitShape if it has one, else a box of Size centred on the origin.
func (d *Draggable) ContainsPoint(p Vec2) bool {
	lx, ly := d.Node.WorldToLocal(p.X, p.Y)
	if hs := d.Node.HitShape; hs != nil {
		return hs.Contains(lx, ly)
	}
	return math.Abs(lx) <= d.size.X/2 && math.Abs(ly) <= d.size.Y/2
}

// BoundingBox returns the world-space box of Size centred on the object.
func (d *Draggable) BoundingBox() Rect {
	p := d.WorldPosition()
	return Rect{p.X - d.size.X/2, p.Y - d.size.Y/2, d.size.X, d.size.Y}
}

// EnableDragging toggles whether the object may be picked up.
func (d *Draggable) EnableDragging(enable bool) { d.draggable = enable }

// IsDraggable reports whether the object may be picked up.
func (d *Draggable) IsDraggable() bool { return d.draggable }

// StartDragging marks the object as dragged.
func (d *Draggable) StartDragging() { d.dragging = true }

// StopDragging clears the dragged flag.
func (d *Draggable) StopDragging() { d.dragging = false }

// IsDragging reports whether a drag is active.
func (d *Draggable) IsDragging() bool { return d.dragging }

// DragOffset is the pointer position minus the object position at pick-up.
// Only meaningful while dragging.
func (d *Draggable) DragOffset() Vec2 { return d.dragOffset }

// SetDragOffset records the pick-up offset.
func (d *Draggable) SetDragOffset(v Vec2) { d.dragOffset = v }

// OriginalPosition is where the object was when the current drag began.
func (d *Draggable) OriginalPosition() Vec2 { return d.originalPos }

// SetOriginalPosition records the snap-back position.
func (d *Draggable) SetOriginalPosition(p Vec2) { d.originalPos = p }

// IsHighlighted reports whether the highlight outline is shown.
func (d *Draggable) IsHighlighted() bool { return d.highlight != nil }

// SetHighlight shows or hides the highlight outline and scales the object by
// HighlightScale. Repeating the current state is a no-op; clearing restores
// the exact previous scale.
func (d *Draggable) SetHighlight(on bool) {
	if on == (d.highlight != nil) {
		return
	}
	if on {
		d.highlight = NewOutline("highlight", d.size.X, d.size.Y, ColorHighlight)
		d.highlight.ZIndex = 100
		d.Node.AddChild(d.highlight)
	} else {
		d.highlight.Dispose()
		d.highlight = nil
	}
	ds := d.displayScale()
	d.Node.SetScale(ds, ds)
}

// Rotate turns the object by deg degrees over 0.2s. Ignored while any
// transition is running on the object.
func (d *Draggable) Rotate(deg float64) {
	if d.anim.Busy(d.Node) {
		return
	}
	d.rotateTo(d.rotation+deg, rotateDuration)
}

// RotateSmooth turns the object by deg degrees over 0.08s, replacing any
// rotation in flight.
func (d *Draggable) RotateSmooth(deg float64) {
	d.rotateTo(d.rotation+deg, rotateSmoothDuration)
}

func (d *Draggable) rotateTo(deg float64, duration float32) {
	d.rotation = deg
	n := d.Node
	d.anim.Run(n, TagRotate, Tween(func() *TweenGroup {
		return TweenRotation(n, degToRad(deg), duration, ease.OutQuad)
	}))
}

// copyGeometry copies placement from src, used by Clone implementations.
func (d *Draggable) copyGeometry(src *Draggable) {
	d.size = src.size
	d.draggable = src.draggable
	d.anim = src.anim
	d.SetPosition(src.Position())
	d.SetRotation(src.rotation)
	d.SetScale(src.scale)
}

// SortByPosition orders objects left to right, breaking ties bottom to top.
// Screen y grows downward, so a larger y sorts first.
func SortByPosition[T Object](objs []T) {
	slices.SortStableFunc(objs, func(a, b T) int {
		pa, pb := a.Base().Position(), b.Base().Position()
		switch {
		case pa.X < pb.X:
			return -1
		case pa.X > pb.X:
			return 1
		case pa.Y > pb.Y:
			return -1
		case pa.Y < pb.Y:
			return 1
		}
		return 0
	})
}
