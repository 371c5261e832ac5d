package tabletop

import "github.com/hajimehoshi/ebiten/v2"

// TokenSize is the default token size.
var TokenSize = Vec2{64, 64}

var colorToken = Color{0.8, 0.2, 0.2, 1}

// Token is a plain marker piece.
type Token struct {
	Draggable
	img *ebiten.Image
}

// NewToken creates a token. img may be nil.
func NewToken(img *ebiten.Image) *Token {
	t := &Token{Draggable: newDraggable("token", TokenSize.X, TokenSize.Y), img: img}
	s := NewSprite("sprite", img, TokenSize.X, TokenSize.Y)
	if img == nil {
		s.Color = colorToken
	}
	t.Node.AddChild(s)
	return t
}

// Kind implements Object.
func (t *Token) Kind() Kind { return KindToken }

// StartDragging implements Object.
func (t *Token) StartDragging() { t.Draggable.StartDragging() }

// Clone returns a token with the same image and placement.
func (t *Token) Clone() Object {
	n := NewToken(t.img)
	n.copyGeometry(&t.Draggable)
	return n
}
