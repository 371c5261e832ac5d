package tabletop

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Deck geometry and timings.
var (
	DeckOffset = Vec2{30, 30}
	DeckSize   = CardSize.Add(DeckOffset)
)

const (
	deckMoveDuration    = 0.1
	shuffleRadius       = 25.0
	shuffleHalfDuration = 0.3
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Deck is a face-down stack. The last card is the top. Decks deal to their
// connected holders in connection order.
type Deck struct {
	Holder

	dealAmount int
	connected  []CardHolder
	inFlight   []*Card // popped by DealSmoothly, hand-off still pending
	shuffler   Shuffler
	buttons    []buttonRegion
	label      *Node
}

// NewDeck creates an empty deck with a deal amount of 1.
func NewDeck() *Deck {
	d := &Deck{
		Holder:     newHolder("deck", DeckSize.X, DeckSize.Y, DeckOffset.X, CardSize.X, nil, ColorDeck),
		dealAmount: 1,
		shuffler:   globalShuffler{},
	}
	d.stacked = true
	d.moveTime = deckMoveDuration

	bs := DeckSize.X * 0.25
	d.buttons = buttonColumn(d.Node, -DeckSize.X/2, -bs*1.5, bs, bs)
	d.label = NewLabel("deal-amount", "1", ColorInk)
	d.label.SetPosition(0, -DeckSize.Y/2+15)
	d.label.ZIndex = 10
	d.Node.AddChild(d.label)
	return d
}

// Kind implements Object.
func (d *Deck) Kind() Kind { return KindDeck }

// StartDragging picks the deck up with its stack; the cards are gathered
// onto the new position by Relayout when it is dropped.
func (d *Deck) StartDragging() { d.dragging = true }

// SetShuffler replaces the randomness source. nil restores the default.
func (d *Deck) SetShuffler(s Shuffler) {
	if s == nil {
		s = globalShuffler{}
	}
	d.shuffler = s
}

// AddCard puts c on top of the deck.
func (d *Deck) AddCard(c *Card) {
	d.AddCardToBack(c)
}

// AddCardToBack puts c on top of the deck. Only c moves.
func (d *Deck) AddCardToBack(c *Card) {
	if c == nil {
		return
	}
	d.detach(c)
	d.cards = append(d.cards, c)
	d.renumber()
	d.moveCard(c, d.Position())
}

// AddCards puts the batch on top in screen order. ref is ignored: a deck has
// a single stack position.
func (d *Deck) AddCards(cards []*Card, ref Vec2) {
	batch := d.prepareBatch(cards)
	SortByPosition(batch)
	for _, c := range batch {
		d.AddCardToBack(c)
	}
}

// Relayout gathers every card back onto the deck.
func (d *Deck) Relayout() {
	d.renumber()
	for _, c := range d.cards {
		d.moveCard(c, d.Position())
	}
}

// RemoveCard takes c out of the stack. The other cards do not move.
func (d *Deck) RemoveCard(c *Card) {
	d.RemoveCards([]*Card{c})
}

// RemoveCards takes every listed card out of the stack.
func (d *Deck) RemoveCards(cards []*Card) {
	for _, c := range cards {
		d.detach(c)
	}
	d.renumber()
}

func (d *Deck) renumber() {
	for i, c := range d.cards {
		c.Node.SetZIndex(i)
	}
}

// Draw pops the top card, or returns nil when the deck is empty.
func (d *Deck) Draw() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards[last] = nil
	d.cards = d.cards[:last]
	return c
}

// --- Deal amount ---

// DealAmount returns how many rounds one deal performs.
func (d *Deck) DealAmount() int { return d.dealAmount }

// SetDealAmount sets the number of rounds, never below zero.
func (d *Deck) SetDealAmount(n int) {
	d.dealAmount = max(0, n)
	d.label.Text = strconv.Itoa(d.dealAmount)
}

// IncrementDealAmount adds one round.
func (d *Deck) IncrementDealAmount() { d.SetDealAmount(d.dealAmount + 1) }

// DecrementDealAmount removes one round, stopping at zero.
func (d *Deck) DecrementDealAmount() { d.SetDealAmount(d.dealAmount - 1) }

// ResetDealAmount goes back to one round.
func (d *Deck) ResetDealAmount() { d.SetDealAmount(1) }

// ButtonAt implements ButtonPanel.
func (d *Deck) ButtonAt(p Vec2) Button { return buttonAt(d.Node, d.buttons, p) }

// Press implements ButtonPanel.
func (d *Deck) Press(b Button) {
	switch b {
	case ButtonIncrement:
		d.IncrementDealAmount()
	case ButtonDecrement:
		d.DecrementDealAmount()
	case ButtonReset:
		d.ResetDealAmount()
	}
}

// --- Connections ---

// ConnectHolder adds h to the deal targets. Duplicates and the deck itself
// are ignored. Reports whether h was added.
func (d *Deck) ConnectHolder(h CardHolder) bool {
	if h == nil || h.Holds() == &d.Holder || d.IsConnected(h) {
		return false
	}
	d.connected = append(d.connected, h)
	return true
}

// DisconnectHolder removes h from the deal targets. Reports whether it was
// connected.
func (d *Deck) DisconnectHolder(h CardHolder) bool {
	if h == nil {
		return false
	}
	i := slices.IndexFunc(d.connected, func(c CardHolder) bool { return c.Holds() == h.Holds() })
	if i < 0 {
		return false
	}
	d.connected = slices.Delete(d.connected, i, i+1)
	return true
}

// SetConnectedHolders replaces the deal targets, dropping duplicates and the
// deck itself.
func (d *Deck) SetConnectedHolders(hs []CardHolder) {
	d.connected = d.connected[:0]
	for _, h := range hs {
		d.ConnectHolder(h)
	}
}

// ConnectedHolders returns the deal targets in connection order. The slice
// MUST NOT be mutated by the caller.
func (d *Deck) ConnectedHolders() []CardHolder { return d.connected }

// IsConnected reports whether h is a deal target.
func (d *Deck) IsConnected(h CardHolder) bool {
	if h == nil {
		return false
	}
	return slices.ContainsFunc(d.connected, func(c CardHolder) bool { return c.Holds() == h.Holds() })
}

// --- Dealing ---

// Deal hands out DealAmount rounds, one card per connected holder per round,
// from the top of the deck. It stops as soon as the deck runs out and returns
// the number of cards dealt.
func (d *Deck) Deal() int {
	return d.deal(func(h CardHolder, c *Card, _ int) {
		h.AddCardToBack(c)
	})
}

// DealSmoothly deals in the same order as Deal but staggers each hand-off by
// delay seconds. Cards leave the deck immediately.
func (d *Deck) DealSmoothly(delay float64) int {
	d.inFlight = slices.DeleteFunc(d.inFlight, func(c *Card) bool {
		return !d.anim.Pending(c.Node, TagDeal)
	})
	return d.deal(func(h CardHolder, c *Card, i int) {
		d.inFlight = append(d.inFlight, c)
		d.anim.Run(c.Node, TagDeal,
			Delay(delay*float64(i)),
			Call(func() { d.handOff(h, c) }),
		)
	})
}

// handOff delivers a delayed card. A target disconnected in the meantime
// sends the card back to the deck.
func (d *Deck) handOff(h CardHolder, c *Card) {
	if i := slices.Index(d.inFlight, c); i >= 0 {
		d.inFlight = slices.Delete(d.inFlight, i, i+1)
	}
	if !d.IsConnected(h) {
		d.AddCard(c)
		return
	}
	h.AddCardToBack(c)
}

// CancelDeals stops every pending smooth-deal hand-off and returns the cards
// that were in flight. They belong to no holder afterwards.
func (d *Deck) CancelDeals() []*Card {
	cards := d.inFlight
	d.inFlight = nil
	for _, c := range cards {
		d.anim.Cancel(c.Node, TagDeal)
	}
	return cards
}

func (d *Deck) deal(give func(h CardHolder, c *Card, i int)) int {
	targets := slices.Clone(d.connected)
	dealt := 0
	for range d.dealAmount {
		for _, h := range targets {
			c := d.Draw()
			if c == nil {
				return dealt
			}
			give(h, c, dealt)
			dealt++
		}
	}
	return dealt
}

// Shuffle randomly permutes the stack, renumbers z-order and fans each card
// out and back along its own angle.
func (d *Deck) Shuffle() {
	d.shuffler.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.renumber()

	home := d.Position()
	n := float64(len(d.cards))
	for i, c := range d.cards {
		angle := 2 * math.Pi / n * float64(i)
		out := home.Add(Vec2{math.Cos(angle), math.Sin(angle)}.Scale(shuffleRadius))
		node := c.Node
		d.anim.Run(node, TagMove,
			Tween(func() *TweenGroup {
				return TweenPosition(node, out.X, out.Y, shuffleHalfDuration, ease.OutQuad)
			}),
			Tween(func() *TweenGroup {
				return TweenPosition(node, home.X, home.Y, shuffleHalfDuration, ease.InQuad)
			}),
		)
	}
}

// Clone returns an empty deck with the same geometry, skin and deal amount.
func (d *Deck) Clone() Object {
	n := NewDeck()
	n.copyGeometry(&d.Draggable)
	n.SetDealAmount(d.dealAmount)
	n.shuffler = d.shuffler
	n.surface.Image = d.surface.Image
	n.surface.Color = d.surface.Color
	return n
}

// SetImage skins the deck surface. nil restores the plain fill.
func (d *Deck) SetImage(img *ebiten.Image) {
	d.surface.Image = img
	if img == nil {
		d.surface.Color = ColorDeck
	} else {
		d.surface.Color = ColorWhite
	}
}
