package tabletop

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Table geometry.
var (
	TableSize       = Vec2{300, 140}
	TableOffset     = 60.0
	TableMaxSpacing = 40.0
)

// Table shows the current play. Every new card first sweeps the previous play
// into the linked discard deck, and every card placed on a table lies face up.
type Table struct {
	Holder
	discard *Deck
}

// NewTable creates an empty table. img may be nil.
func NewTable(img *ebiten.Image) *Table {
	return &Table{Holder: newHolder("table", TableSize.X, TableSize.Y, TableOffset, TableMaxSpacing, img, ColorTable)}
}

// Kind implements Object.
func (t *Table) Kind() Kind { return KindTable }

// SetDiscardDeck links the deck that receives flushed plays. nil unlinks.
func (t *Table) SetDiscardDeck(d *Deck) { t.discard = d }

// DiscardDeck returns the linked discard deck, or nil.
func (t *Table) DiscardDeck() *Deck { return t.discard }

// flush moves the current play into the discard deck, keeping each card's
// face. keep lists incoming cards that must not be swept. Without a discard
// deck the cards are released where they lie.
func (t *Table) flush(keep ...*Card) {
	prev := slices.DeleteFunc(slices.Clone(t.cards), func(c *Card) bool {
		return slices.Contains(keep, c)
	})
	t.cards = t.cards[:0]
	if t.discard == nil {
		return
	}
	for _, c := range prev {
		t.discard.AddCard(c)
	}
}

// AddCard replaces the current play with c, face up.
func (t *Table) AddCard(c *Card) {
	if c == nil {
		return
	}
	t.flush(c)
	c.SetFaceUp(true)
	t.Holder.AddCard(c)
}

// AddCards replaces the current play with the batch, face up.
func (t *Table) AddCards(cards []*Card, ref Vec2) {
	if len(cards) == 0 {
		return
	}
	t.flush(cards...)
	for _, c := range cards {
		if c != nil {
			c.SetFaceUp(true)
		}
	}
	t.Holder.AddCards(cards, ref)
}

// AddCardToBack is how dealt cards arrive; it follows the same single-play
// rule as AddCard.
func (t *Table) AddCardToBack(c *Card) {
	if c == nil {
		return
	}
	t.flush(c)
	c.SetFaceUp(true)
	t.Holder.AddCardToBack(c)
}

// Clone returns an empty table with the same geometry and discard link.
func (t *Table) Clone() Object {
	return &Table{Holder: t.cloneHolder("table"), discard: t.discard}
}
