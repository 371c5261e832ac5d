package tabletop

import (
	"unicode/utf8"
)

// TextSize is the size of a new text object.
var TextSize = Vec2{200, 50}

const (
	defaultText = "Text"
	textPadding = 10
	// glyph metrics of the label face (basicfont 7x13)
	glyphWidth  = 7
	glyphHeight = 13
)

var colorTextEditing = Color{0, 0, 1, 1}

// Text is a free-standing, editable label.
type Text struct {
	Draggable

	text    string
	editing bool
	label   *Node
}

// NewText creates a text object reading "Text".
func NewText() *Text {
	t := &Text{
		Draggable: newDraggable("text", TextSize.X, TextSize.Y),
		text:      defaultText,
	}
	bg := NewSprite("background", nil, TextSize.X, TextSize.Y)
	bg.Color = Color{1, 1, 1, 0.6}
	t.Node.AddChild(bg)
	t.label = NewLabel("label", defaultText, ColorInk)
	t.label.ZIndex = 10
	t.Node.AddChild(t.label)
	return t
}

// Kind implements Object.
func (t *Text) Kind() Kind { return KindText }

// StartDragging implements Object.
func (t *Text) StartDragging() { t.Draggable.StartDragging() }

// Text returns the current string.
func (t *Text) Text() string { return t.text }

// SetText replaces the string. An empty string becomes "Text".
func (t *Text) SetText(s string) {
	if s == "" {
		s = defaultText
	}
	t.text = s
	t.updateLabel()
}

// IsEditing reports whether typed characters go to this object.
func (t *Text) IsEditing() bool { return t.editing }

// StartEditing highlights the object and tints the label.
func (t *Text) StartEditing() {
	if t.editing {
		return
	}
	t.editing = true
	t.SetHighlight(true)
	t.label.Color = colorTextEditing
}

// StopEditing ends editing. Text left empty falls back to "Text".
func (t *Text) StopEditing() {
	if !t.editing {
		return
	}
	t.editing = false
	t.SetHighlight(false)
	t.label.Color = ColorInk
	if t.text == "" {
		t.text = defaultText
		t.updateLabel()
	}
}

// TypeRunes appends typed characters while editing.
func (t *Text) TypeRunes(rs []rune) {
	if !t.editing || len(rs) == 0 {
		return
	}
	t.text += string(rs)
	t.updateLabel()
}

// Backspace deletes the last character while editing. The text may become
// empty until editing stops.
func (t *Text) Backspace() {
	if !t.editing || t.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.text)
	t.text = t.text[:len(t.text)-size]
	t.updateLabel()
}

// updateLabel refreshes the label and resizes the object around it.
func (t *Text) updateLabel() {
	t.label.Text = t.text
	w := float64(utf8.RuneCountInString(t.text)*glyphWidth + 2*textPadding)
	h := float64(glyphHeight + 2*textPadding)
	t.size = Vec2{w, h}
	bg := t.Node.Children()[0]
	bg.Width, bg.Height = w, h
	if t.highlight != nil {
		t.highlight.Width, t.highlight.Height = w, h
	}
}

// Clone returns a text object with the same string and placement.
func (t *Text) Clone() Object {
	n := NewText()
	n.copyGeometry(&t.Draggable)
	n.SetText(t.text)
	return n
}
