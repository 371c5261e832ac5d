package tabletop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// CardSize is the default card size in pixels.
var CardSize = Vec2{64, 96}

// DefaultFlipDuration is used by the scene for right-click and key flips.
const DefaultFlipDuration = 0.3

var colorCardBack = Color{0.2, 0.3, 0.6, 1}

// Card is a two-sided draggable. Exactly one of its faces is visible.
type Card struct {
	Draggable

	// Label is a free-form identifier, usually the layout id or file name.
	Label string

	frontImg, backImg *ebiten.Image
	front, back       *Node
	faceUp            bool
}

// NewCard creates a face-down card. Either image may be nil, in which case
// that face renders as a solid box.
func NewCard(front, back *ebiten.Image) *Card {
	c := &Card{
		Draggable: newDraggable("card", CardSize.X, CardSize.Y),
		frontImg:  front,
		backImg:   back,
	}
	c.back = NewSprite("back", back, CardSize.X, CardSize.Y)
	if back == nil {
		c.back.Color = colorCardBack
	}
	c.front = NewSprite("front", front, CardSize.X, CardSize.Y)
	c.Node.AddChild(c.back)
	c.Node.AddChild(c.front)
	c.showFace()
	return c
}

// Kind implements Object.
func (c *Card) Kind() Kind { return KindCard }

// StartDragging implements Object.
func (c *Card) StartDragging() { c.Draggable.StartDragging() }

// IsFaceUp reports which face is showing.
func (c *Card) IsFaceUp() bool { return c.faceUp }

// FrontVisible and BackVisible expose the visible face for rendering checks.
func (c *Card) FrontVisible() bool { return c.front.Visible }

func (c *Card) BackVisible() bool { return c.back.Visible }

// Front returns the front image (may be nil).
func (c *Card) Front() *ebiten.Image { return c.frontImg }

// Back returns the back image (may be nil).
func (c *Card) Back() *ebiten.Image { return c.backImg }

func (c *Card) showFace() {
	c.front.Visible = c.faceUp
	c.back.Visible = !c.faceUp
}

// Flip turns the card over. The face state and the visible face change
// together before Flip returns; the squash animation is only cosmetic.
func (c *Card) Flip(duration float64) {
	c.faceUp = !c.faceUp
	c.showFace()

	n := c.Node
	if duration <= 0 {
		c.anim.Cancel(n, TagFlip)
		n.ScaleX = c.displayScale()
		return
	}
	half := float32(duration / 2)
	c.anim.Run(n, TagFlip,
		Tween(func() *TweenGroup { return TweenScaleX(n, 0, half, ease.Linear) }),
		Tween(func() *TweenGroup { return TweenScaleX(n, c.displayScale(), half, ease.Linear) }),
	)
}

// SetFaceUp flips the card instantly when its state differs from faceUp.
func (c *Card) SetFaceUp(faceUp bool) {
	if c.faceUp != faceUp {
		c.Flip(0)
	}
}

// resize changes the card's size and both faces.
func (c *Card) resize(w, h float64) {
	c.size = Vec2{w, h}
	for _, n := range [...]*Node{c.front, c.back, c.highlight} {
		if n != nil {
			n.Width, n.Height = w, h
		}
	}
}

// Clone returns an independent card sharing only the face images.
func (c *Card) Clone() Object {
	n := NewCard(c.frontImg, c.backImg)
	n.Label = c.Label
	n.copyGeometry(&c.Draggable)
	n.resize(c.size.X, c.size.Y)
	n.SetFaceUp(c.faceUp)
	return n
}
