package tabletop

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// CounterSize is the body of a counter; its buttons hang off the right edge.
var CounterSize = Vec2{100, 100}

// Counter is a free-standing integer tally with increment, decrement and
// reset buttons. The value is unbounded in both directions.
type Counter struct {
	Draggable

	value   int
	label   *Node
	buttons []buttonRegion
}

// NewCounter creates a counter at zero. img may be nil.
func NewCounter(img *ebiten.Image) *Counter {
	c := &Counter{Draggable: newDraggable("counter", CounterSize.X, CounterSize.Y)}
	c.draggable = false

	body := NewSprite("body", img, CounterSize.X, CounterSize.Y)
	if img == nil {
		body.Color = ColorCounter
	}
	c.Node.AddChild(body)

	bw, bh := CounterSize.X*0.4, CounterSize.Y/3
	c.buttons = buttonColumn(c.Node, CounterSize.X/2, -CounterSize.Y/2, bw, bh)
	// the buttons hang outside the body but still pick the counter up
	c.Node.HitShape = HitRect{X: -CounterSize.X / 2, Y: -CounterSize.Y / 2, Width: CounterSize.X + bw, Height: CounterSize.Y}

	c.label = NewLabel("value", "0", ColorInk)
	c.label.ZIndex = 10
	c.Node.AddChild(c.label)
	return c
}

// Kind implements Object.
func (c *Counter) Kind() Kind { return KindCounter }

// StartDragging implements Object.
func (c *Counter) StartDragging() { c.Draggable.StartDragging() }

// Value returns the current tally.
func (c *Counter) Value() int { return c.value }

// SetValue sets the tally.
func (c *Counter) SetValue(v int) {
	c.value = v
	c.label.Text = strconv.Itoa(v)
}

// Increment adds one.
func (c *Counter) Increment() { c.SetValue(c.value + 1) }

// Decrement subtracts one.
func (c *Counter) Decrement() { c.SetValue(c.value - 1) }

// Reset returns the tally to zero.
func (c *Counter) Reset() { c.SetValue(0) }

// ButtonAt implements ButtonPanel.
func (c *Counter) ButtonAt(p Vec2) Button { return buttonAt(c.Node, c.buttons, p) }

// Press implements ButtonPanel.
func (c *Counter) Press(b Button) {
	switch b {
	case ButtonIncrement:
		c.Increment()
	case ButtonDecrement:
		c.Decrement()
	case ButtonReset:
		c.Reset()
	}
}

// Clone returns a counter with the same value and placement.
func (c *Counter) Clone() Object {
	body := c.Node.Children()[0]
	n := NewCounter(body.Image)
	n.copyGeometry(&c.Draggable)
	n.SetValue(c.value)
	return n
}
