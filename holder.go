package tabletop

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const holderMoveDuration = 0.3

// CardHolder is an Object that keeps an ordered run of cards: racks, tables
// and decks.
type CardHolder interface {
	Object
	// Holds returns the shared layout state.
	Holds() *Holder
	// AddCard inserts one card at the slot nearest its current position.
	AddCard(c *Card)
	// AddCards inserts a batch contiguously at the slot nearest ref.
	AddCards(cards []*Card, ref Vec2)
	// AddCardToBack appends one card after the last slot.
	AddCardToBack(c *Card)
	// RemoveCard drops c from the holder. Absent cards are ignored.
	RemoveCard(c *Card)
	// RemoveCards drops every listed card that is present.
	RemoveCards(cards []*Card)
	// Relayout moves every held card back to its slot.
	Relayout()
}

// Holder owns card membership and display order for a holder object. It does
// not own the cards themselves.
type Holder struct {
	Draggable

	cards      []*Card
	spacing    float64
	maxSpacing float64
	offset     float64
	stacked    bool
	moveTime   float32
	surface    *Node
}

func newHolder(name string, w, h, offset, maxSpacing float64, img *ebiten.Image, c Color) Holder {
	hd := Holder{
		Draggable:  newDraggable(name, w, h),
		spacing:    maxSpacing,
		maxSpacing: maxSpacing,
		offset:     offset,
		moveTime:   holderMoveDuration,
	}
	hd.draggable = false
	hd.surface = NewSprite("surface", img, w, h)
	if img == nil {
		hd.surface.Color = c
	}
	hd.Node.AddChild(hd.surface)
	return hd
}

// Holds returns h.
func (h *Holder) Holds() *Holder { return h }

// StartDragging picks the holder up and releases every card it held. The
// cards stay where they are.
func (h *Holder) StartDragging() {
	h.dragging = true
	h.cards = nil
}

// Cards returns the held cards in display order. The slice MUST NOT be
// mutated by the caller.
func (h *Holder) Cards() []*Card { return h.cards }

// Len returns the number of held cards.
func (h *Holder) Len() int { return len(h.cards) }

// Has reports whether c is held.
func (h *Holder) Has(c *Card) bool { return slices.Contains(h.cards, c) }

// Spacing returns the current distance between neighbouring slots.
func (h *Holder) Spacing() float64 { return h.spacing }

// MaxSpacing returns the configured spacing cap.
func (h *Holder) MaxSpacing() float64 { return h.maxSpacing }

// SetMaxSpacing changes the spacing cap and re-flows the held cards.
func (h *Holder) SetMaxSpacing(v float64) {
	h.maxSpacing = v
	h.Relayout()
}

// setSpacing derives the spacing for count cards so the row never spills out
// of the holder's width.
func (h *Holder) setSpacing(count int) {
	if count <= 1 {
		h.spacing = h.maxSpacing
		return
	}
	h.spacing = math.Min(h.maxSpacing, (h.size.X-h.offset)/float64(count-1))
}

// SlotPosition returns where slot i of n sits with the current spacing.
// Stacked holders put every slot on the holder's origin.
func (h *Holder) SlotPosition(i, n int) Vec2 {
	p := h.Position()
	if h.stacked {
		return p
	}
	off := (float64(i) - float64(n-1)/2) * h.spacing
	sin, cos := math.Sincos(degToRad(h.rotation))
	return Vec2{p.X + off*cos, p.Y + off*sin}
}

// nearestSlot returns the insertion index for a point when the holder will
// hold n cards. Ties go to the lower index; the append slot only wins when it
// is strictly closer.
func (h *Holder) nearestSlot(p Vec2, n int) int {
	nearest := 0
	best := math.MaxFloat64
	for i := range h.cards {
		if d := p.Dist(h.SlotPosition(i, n)); d < best {
			best = d
			nearest = i
		}
	}
	if d := p.Dist(h.SlotPosition(len(h.cards), n)); d < best {
		nearest = len(h.cards)
	}
	return nearest
}

// AddCard inserts c at the slot nearest to its current position and re-flows
// the row. Adding a card the holder already has moves it.
func (h *Holder) AddCard(c *Card) {
	if c == nil {
		return
	}
	h.detach(c)
	n := len(h.cards) + 1
	h.setSpacing(n)
	idx := 0
	if len(h.cards) > 0 {
		idx = h.nearestSlot(c.Position(), n)
	}
	h.insertAt(idx, c)
}

// AddCards sorts the batch by screen position and inserts it contiguously at
// the slot nearest ref, so a multi-card drop keeps its left-to-right order.
func (h *Holder) AddCards(cards []*Card, ref Vec2) {
	batch := h.prepareBatch(cards)
	if len(batch) == 0 {
		return
	}
	SortByPosition(batch)
	n := len(h.cards) + len(batch)
	h.setSpacing(n)
	idx := 0
	if len(h.cards) > 0 {
		idx = h.nearestSlot(ref, n)
	}
	h.insertAt(idx, batch...)
}

// AddCardAt inserts c at index, clamped to the valid range.
func (h *Holder) AddCardAt(c *Card, index int) {
	if c == nil {
		return
	}
	h.AddCardsAt([]*Card{c}, index)
}

// AddCardsAt inserts the batch, in the given order, starting at index.
func (h *Holder) AddCardsAt(cards []*Card, index int) {
	batch := h.prepareBatch(cards)
	if len(batch) == 0 {
		return
	}
	h.setSpacing(len(h.cards) + len(batch))
	h.insertAt(max(0, min(index, len(h.cards))), batch...)
}

// AddCardToBack appends c after the last slot.
func (h *Holder) AddCardToBack(c *Card) {
	if c == nil {
		return
	}
	h.detach(c)
	h.setSpacing(len(h.cards) + 1)
	h.insertAt(len(h.cards), c)
}

// prepareBatch drops nils and duplicates and detaches cards already held.
func (h *Holder) prepareBatch(cards []*Card) []*Card {
	batch := make([]*Card, 0, len(cards))
	for _, c := range cards {
		if c == nil || slices.Contains(batch, c) {
			continue
		}
		h.detach(c)
		batch = append(batch, c)
	}
	return batch
}

func (h *Holder) detach(c *Card) {
	if i := slices.Index(h.cards, c); i >= 0 {
		h.cards = slices.Delete(h.cards, i, i+1)
	}
}

func (h *Holder) insertAt(index int, batch ...*Card) {
	h.cards = slices.Insert(h.cards, index, batch...)
	h.flow()
}

// flow assigns ascending z-order and moves every card to its slot.
func (h *Holder) flow() {
	n := len(h.cards)
	for i, c := range h.cards {
		c.Node.SetZIndex(i)
		h.moveCard(c, h.SlotPosition(i, n))
	}
}

// moveCard slides c to pos and turns it to the holder's rotation, replacing
// any move already in flight for that card.
func (h *Holder) moveCard(c *Card, pos Vec2) {
	n := c.Node
	rot := h.rotation
	c.rotation = rot
	h.anim.Cancel(n, TagRotate)
	d := h.moveTime
	h.anim.Run(n, TagMove, Tween(func() *TweenGroup {
		return TweenPlacement(n, pos.X, pos.Y, degToRad(rot), d, ease.OutQuad)
	}))
}

// RemoveCard drops c and re-flows the remaining cards. Absent cards are
// ignored.
func (h *Holder) RemoveCard(c *Card) {
	h.RemoveCards([]*Card{c})
}

// RemoveCards drops every listed card that is held and re-flows the rest.
func (h *Holder) RemoveCards(cards []*Card) {
	removed := false
	for _, c := range cards {
		if i := slices.Index(h.cards, c); i >= 0 {
			h.cards = slices.Delete(h.cards, i, i+1)
			removed = true
		}
	}
	if removed {
		h.Relayout()
	}
}

// Relayout recomputes spacing for the current count and moves every card to
// its slot. Called after the holder is moved or rotated.
func (h *Holder) Relayout() {
	if len(h.cards) > 0 {
		h.setSpacing(len(h.cards))
	}
	h.flow()
}

// cloneHolder copies geometry and layout settings into an empty holder.
func (h *Holder) cloneHolder(name string) Holder {
	n := newHolder(name, h.size.X, h.size.Y, h.offset, h.maxSpacing, h.surface.Image, h.surface.Color)
	n.stacked = h.stacked
	n.moveTime = h.moveTime
	n.copyGeometry(&h.Draggable)
	return n
}
