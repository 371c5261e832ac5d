package tabletop

import (
	"io"
	"log/slog"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScene() *Scene {
	cfg := DefaultConfig()
	cfg.Logger = discardLogger()
	return NewScene(cfg)
}

func addCard(s *Scene, x, y float64) *Card {
	c := NewCard(nil, nil)
	c.SetPosition(Vec2{x, y})
	s.Add(c)
	return c
}

func addRack(s *Scene, x, y float64) *Rack {
	r := NewRack(nil)
	r.SetPosition(Vec2{x, y})
	s.Add(r)
	return r
}

func addDeck(s *Scene, x, y float64) *Deck {
	d := NewDeck()
	d.SetPosition(Vec2{x, y})
	s.Add(d)
	return d
}

func addTable(s *Scene, x, y float64) *Table {
	t := NewTable(nil)
	t.SetPosition(Vec2{x, y})
	s.Add(t)
	return t
}

// dragTo presses at from, moves to to and releases there.
func dragTo(s *Scene, from, to Vec2) {
	s.HandleMouseMove(from)
	s.HandleMouseDown(from, MouseButtonLeft)
	s.HandleMouseMove(to)
	s.HandleMouseUp(to, MouseButtonLeft)
}

func click(s *Scene, p Vec2) {
	s.HandleMouseDown(p, MouseButtonLeft)
	s.HandleMouseUp(p, MouseButtonLeft)
}

func TestNewScene(t *testing.T) {
	s := newTestScene()
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("scene should have a root container")
	}
	if s.Mode() != ModeNormal || s.MoveMode() {
		t.Errorf("mode = %v move = %v, want normal and off", s.Mode(), s.MoveMode())
	}
	if s.Animator() == nil {
		t.Error("scene should own an animator")
	}
}

func TestNewSceneDefaultsKeys(t *testing.T) {
	s := NewScene(Config{Logger: discardLogger()})
	if s.Config().Keys.Zoom != ebiten.KeyZ {
		t.Errorf("Keys.Zoom = %v, want Z", s.Config().Keys.Zoom)
	}
}

func TestSceneAddTwiceIsNoop(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 0, 0)
	s.Add(c)
	if len(s.Cards()) != 1 || s.Root().NumChildren() != 1 {
		t.Errorf("cards = %d children = %d, want 1 and 1", len(s.Cards()), s.Root().NumChildren())
	}
	if c.Animator() != s.Animator() {
		t.Error("Add should hand the scene animator to the object")
	}
}

func TestSceneZOrderByKind(t *testing.T) {
	s := newTestScene()
	tbl := addTable(s, 0, 0)
	r := addRack(s, 0, 0)
	d := addDeck(s, 0, 0)
	c1 := addCard(s, 0, 0)
	c2 := addCard(s, 0, 0)
	ctr := NewCounter(nil)
	s.Add(ctr)
	txt := s.AddText("note", Vec2{})

	order := []*Node{tbl.Node, r.Node, d.Node, c1.Node, c2.Node, ctr.Node, txt.Node}
	for i := 1; i < len(order); i++ {
		if order[i-1].ZIndex >= order[i].ZIndex {
			t.Errorf("%s z=%d should be below %s z=%d",
				order[i-1].Name, order[i-1].ZIndex, order[i].Name, order[i].ZIndex)
		}
	}
	if got := s.CardAt(Vec2{}); got != c2 {
		t.Error("the last added card should be on top")
	}
}

func TestSceneObjectAtPrefersCards(t *testing.T) {
	s := newTestScene()
	addRack(s, 0, 0)
	c := addCard(s, 0, 0)
	if got := s.ObjectAt(Vec2{}); got != Object(c) {
		t.Errorf("ObjectAt = %v, want the card", got)
	}
	if got := s.ObjectAt(Vec2{200, 0}); got == nil || got.Kind() != KindRack {
		t.Errorf("ObjectAt beside the card = %v, want the rack", got)
	}
	if got := s.ObjectAt(Vec2{2000, 2000}); got != nil {
		t.Errorf("ObjectAt on empty space = %v, want nil", got)
	}
}

func TestMarqueeSelectsThenClickClears(t *testing.T) {
	s := newTestScene()
	cards := []*Card{addCard(s, 100, 100), addCard(s, 200, 100), addCard(s, 300, 100)}
	addCard(s, 900, 700)

	s.HandleMouseDown(Vec2{20, 20}, MouseButtonLeft)
	s.HandleMouseMove(Vec2{400, 200})
	if r, ok := s.Marquee(); !ok || r.Width != 380 {
		t.Fatalf("Marquee = %v %v, want a 380 wide rectangle", r, ok)
	}
	s.HandleMouseUp(Vec2{400, 200}, MouseButtonLeft)

	if len(s.Selected()) != 3 {
		t.Fatalf("selected = %d, want 3", len(s.Selected()))
	}
	for i, c := range cards {
		if !s.IsSelected(c) || !c.IsHighlighted() {
			t.Errorf("card %d not selected and highlighted", i)
		}
	}

	click(s, Vec2{600, 600})
	if len(s.Selected()) != 0 {
		t.Errorf("selected = %d after clicking empty space, want 0", len(s.Selected()))
	}
	for i, c := range cards {
		if c.IsHighlighted() {
			t.Errorf("card %d still highlighted", i)
		}
	}
}

func TestMarqueeSkipsPartialAndUndraggable(t *testing.T) {
	s := newTestScene()
	inside := addCard(s, 100, 100)
	partial := addCard(s, 390, 100)
	r := addRack(s, 200, 100)

	s.HandleMouseDown(Vec2{20, 20}, MouseButtonLeft)
	s.HandleMouseMove(Vec2{400, 200})
	s.HandleMouseUp(Vec2{400, 200}, MouseButtonLeft)

	if !s.IsSelected(inside) {
		t.Error("card inside the marquee should be selected")
	}
	if s.IsSelected(partial) {
		t.Error("card crossing the marquee edge should not be selected")
	}
	if s.IsSelected(r) {
		t.Error("rack should not be selected outside move mode")
	}
}

func TestDragCardIntoRack(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	c1 := addCard(s, 100, 100)
	c2 := addCard(s, 100, 300)

	dragTo(s, Vec2{100, 100}, Vec2{400, 500})
	s.Animator().Finish()
	if !r.Has(c1) {
		t.Fatal("card dropped on the rack should be held")
	}
	if c1.Position() != (Vec2{400, 500}) {
		t.Errorf("single card at %v, want the rack centre", c1.Position())
	}

	dragTo(s, Vec2{100, 300}, Vec2{450, 500})
	s.Animator().Finish()
	got := r.Cards()
	if len(got) != 2 || got[0] != c1 || got[1] != c2 {
		t.Fatalf("rack order wrong, len %d", len(got))
	}
	if c1.Position().X != 368 || c2.Position().X != 432 {
		t.Errorf("slots = %v, %v, want x 368 and 432", c1.Position().X, c2.Position().X)
	}
	if c1.Node.ZIndex >= c2.Node.ZIndex {
		t.Error("later slot should be drawn above the earlier one")
	}
}

func TestDragCardOutOfRack(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	c := addCard(s, 0, 0)
	r.AddCard(c)
	s.Animator().Finish()

	dragTo(s, Vec2{400, 500}, Vec2{100, 100})
	s.Animator().Finish()
	if r.Has(c) {
		t.Error("card dragged off the rack should be released")
	}
	if c.Position() != (Vec2{100, 100}) {
		t.Errorf("card at %v, want (100, 100)", c.Position())
	}
}

func TestCancelDragReturnsCardToRack(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	c := addCard(s, 0, 0)
	r.AddCard(c)
	s.Animator().Finish()

	s.HandleMouseDown(Vec2{400, 500}, MouseButtonLeft)
	s.HandleMouseMove(Vec2{100, 100})
	if r.Has(c) || len(s.Dragged()) != 1 {
		t.Fatal("card should be out of the rack while dragged")
	}
	s.HandleKeyDown(ebiten.KeyEscape)
	s.Animator().Finish()

	if !r.Has(c) {
		t.Error("cancelled drag should put the card back in the rack")
	}
	if c.Position() != (Vec2{400, 500}) {
		t.Errorf("card at %v, want (400, 500)", c.Position())
	}
	if len(s.Selected()) != 0 || len(s.Dragged()) != 0 {
		t.Error("cancel should clear the drag and the selection")
	}
	s.HandleMouseUp(Vec2{100, 100}, MouseButtonLeft)
	if c.Position() != (Vec2{400, 500}) {
		t.Error("release after cancel should do nothing")
	}
}

func TestCancelDragRestoresHolderOrder(t *testing.T) {
	type setup struct {
		holder  CardHolder
		discard *Deck
		cards   []*Card // pre-drag order
		pick    []*Card
		press   Vec2
	}
	tests := []struct {
		name  string
		build func(s *Scene) setup
	}{
		{"two cards out of a rack", func(s *Scene) setup {
			r := addRack(s, 400, 500)
			cs := []*Card{addCard(s, 0, 0), addCard(s, 0, 0), addCard(s, 0, 0), addCard(s, 0, 0)}
			r.AddCardsAt(cs, 0) // x = 304, 368, 432, 496
			return setup{holder: r, cards: cs, pick: cs[1:3], press: Vec2{368, 500}}
		}},
		{"first card of a table play", func(s *Scene) setup {
			tb := addTable(s, 640, 300)
			d := addDeck(s, 900, 300)
			tb.SetDiscardDeck(d)
			cs := []*Card{addCard(s, 0, 0), addCard(s, 10, 0)}
			tb.AddCards(cs, Vec2{}) // x = 620, 660
			return setup{holder: tb, discard: d, cards: cs, pick: cs[:1], press: Vec2{600, 300}}
		}},
		{"last card of a table play", func(s *Scene) setup {
			tb := addTable(s, 640, 300)
			d := addDeck(s, 900, 300)
			tb.SetDiscardDeck(d)
			cs := []*Card{addCard(s, 0, 0), addCard(s, 10, 0)}
			tb.AddCards(cs, Vec2{})
			return setup{holder: tb, discard: d, cards: cs, pick: cs[1:], press: Vec2{680, 300}}
		}},
		{"top card of a deck", func(s *Scene) setup {
			d := addDeck(s, 200, 300)
			cs := []*Card{addCard(s, 0, 0), addCard(s, 0, 0), addCard(s, 0, 0)}
			for _, c := range cs {
				d.AddCard(c)
			}
			return setup{holder: d, cards: cs, pick: cs[2:], press: Vec2{200, 300}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene()
			st := tt.build(s)
			s.Animator().Finish()
			picked := make([]Object, len(st.pick))
			for i, c := range st.pick {
				picked[i] = c
			}
			s.Select(picked...)

			s.HandleMouseDown(st.press, MouseButtonLeft)
			s.HandleMouseMove(Vec2{50, 50})
			if len(s.Dragged()) != len(st.pick) {
				t.Fatalf("dragging %d objects, want %d", len(s.Dragged()), len(st.pick))
			}
			s.HandleKeyDown(ebiten.KeyEscape)
			s.Animator().Finish()

			h := st.holder.Holds()
			assertOrder(t, h, st.cards...)
			for i, c := range h.Cards() {
				if c.Node.ZIndex != i {
					t.Errorf("card %d z = %d, want %d", i, c.Node.ZIndex, i)
				}
				if want := h.SlotPosition(i, h.Len()); c.Position() != want {
					t.Errorf("card %d at %v, want %v", i, c.Position(), want)
				}
			}
			if st.discard != nil && st.discard.Len() != 0 {
				t.Errorf("discard deck holds %d cards, want none", st.discard.Len())
			}
		})
	}
}

func TestDeleteDeckStopsPendingDeals(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 300)
	r1 := addRack(s, 400, 100)
	r2 := addRack(s, 400, 600)
	cs := []*Card{addCard(s, 0, 0), addCard(s, 0, 0), addCard(s, 0, 0)}
	for _, c := range cs {
		d.AddCard(c)
	}
	d.ConnectHolder(r1)
	d.ConnectHolder(r2)
	s.Animator().Finish()

	if n := d.DealSmoothly(0.5); n != 2 {
		t.Fatalf("DealSmoothly = %d, want 2", n)
	}
	s.Remove(r2)
	s.Remove(d)
	s.Animator().Finish()

	if d.Len() != 1 || d.Has(cs[1]) {
		t.Errorf("deleted deck holds %d cards, want only the undealt one", d.Len())
	}
	if r1.Len() != 0 {
		t.Errorf("rack received %d cards from a deleted deck", r1.Len())
	}
	for _, c := range cs[1:] {
		if s.holderOf(c) != nil {
			t.Error("an in-flight card should be left loose")
		}
		if c.Node.ZIndex < zCard {
			t.Errorf("loose card z = %d, want at least %d", c.Node.ZIndex, zCard)
		}
	}
}

func TestDropOnTableFlushesToDiscard(t *testing.T) {
	s := newTestScene()
	tbl := addTable(s, 600, 300)
	discard := addDeck(s, 900, 300)
	tbl.SetDiscardDeck(discard)
	a := addCard(s, 100, 100)
	b := addCard(s, 100, 300)

	dragTo(s, Vec2{100, 100}, Vec2{600, 300})
	s.Animator().Finish()
	if !a.IsFaceUp() || !tbl.Has(a) {
		t.Fatal("card on the table should be held face up")
	}

	dragTo(s, Vec2{100, 300}, Vec2{600, 300})
	s.Animator().Finish()
	if tbl.Len() != 1 || !tbl.Has(b) {
		t.Fatalf("table should hold only the new play, has %d", tbl.Len())
	}
	if !discard.Has(a) {
		t.Error("previous play should be in the discard deck")
	}
	if !a.IsFaceUp() {
		t.Error("discarded card should keep its face")
	}
	if a.Position() != discard.Position() {
		t.Errorf("discarded card at %v, want the deck at %v", a.Position(), discard.Position())
	}
}

func TestRightClickFlips(t *testing.T) {
	s := newTestScene()
	a := addCard(s, 100, 100)
	b := addCard(s, 300, 100)
	c := addCard(s, 500, 100)

	s.HandleMouseDown(Vec2{100, 100}, MouseButtonRight)
	if !a.IsFaceUp() {
		t.Error("right click should flip the card under the pointer")
	}

	s.Select(b, c)
	s.HandleMouseDown(Vec2{300, 100}, MouseButtonRight)
	if !b.IsFaceUp() || !c.IsFaceUp() {
		t.Error("right click on a selected card should flip the whole selection")
	}
	s.Animator().Finish()
	if c.Node.ScaleX != c.displayScale() {
		t.Errorf("ScaleX = %v after flip, want %v", c.Node.ScaleX, c.displayScale())
	}
}

func TestHoverHighlight(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	r := addRack(s, 600, 500)

	s.HandleMouseMove(Vec2{100, 100})
	if !c.IsHighlighted() {
		t.Error("hovered card should be highlighted")
	}
	s.HandleMouseMove(Vec2{600, 500})
	if c.IsHighlighted() {
		t.Error("card should lose its highlight when the pointer leaves")
	}
	if r.IsHighlighted() {
		t.Error("undraggable rack should not highlight on hover")
	}
}

func TestMoveModeDragsHolders(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	c := addCard(s, 0, 0)
	r.AddCard(c)
	s.Animator().Finish()

	dragTo(s, Vec2{600, 500}, Vec2{700, 400})
	if r.Position() != (Vec2{400, 500}) {
		t.Fatal("rack should not move outside move mode")
	}

	s.HandleKeyDown(ebiten.KeyM)
	if !s.MoveMode() || !r.IsDraggable() {
		t.Fatal("M should turn move mode on")
	}
	dragTo(s, Vec2{600, 500}, Vec2{700, 400})
	s.Animator().Finish()
	if r.Position() != (Vec2{500, 400}) {
		t.Errorf("rack at %v, want (500, 400)", r.Position())
	}
	if r.Len() != 0 {
		t.Error("a picked up rack releases its cards")
	}
	if c.Position() != (Vec2{400, 500}) {
		t.Errorf("released card moved to %v", c.Position())
	}

	s.HandleKeyDown(ebiten.KeyM)
	if s.MoveMode() || r.IsDraggable() || s.IsSelected(r) {
		t.Error("leaving move mode should lock and deselect the rack")
	}
}

func TestMoveModeDeckKeepsCards(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	for range 3 {
		d.AddCard(addCard(s, 0, 0))
	}
	s.Animator().Finish()
	s.SetMoveMode(true)

	dragTo(s, Vec2{230, 250}, Vec2{330, 250})
	s.Animator().Finish()
	if d.Position() != (Vec2{300, 200}) {
		t.Fatalf("deck at %v, want (300, 200)", d.Position())
	}
	if d.Len() != 3 {
		t.Fatalf("deck holds %d cards, want 3", d.Len())
	}
	for i, c := range d.Cards() {
		if c.Position() != d.Position() {
			t.Errorf("card %d at %v, want the deck position", i, c.Position())
		}
	}
}

func TestZoomInAndOut(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	z := c.Node.ZIndex

	if s.EnterZoom() {
		t.Fatal("zoom needs exactly one selected card")
	}
	click(s, Vec2{100, 100})
	s.HandleKeyDown(ebiten.KeyZ)
	if s.Mode() != ModeZoom || s.Zoomed() != c {
		t.Fatalf("mode = %v, want zoom on the card", s.Mode())
	}
	s.Animator().Finish()
	if c.Position() != (Vec2{640, 400}) {
		t.Errorf("zoomed card at %v, want the screen centre", c.Position())
	}
	if c.Scale() != 3 || c.Node.ZIndex != zZoomed {
		t.Errorf("scale = %v z = %d", c.Scale(), c.Node.ZIndex)
	}

	// drags are ignored while zoomed
	s.HandleMouseMove(Vec2{10, 10})
	if c.Position() != (Vec2{640, 400}) {
		t.Error("pointer moves should not touch the zoomed card")
	}

	s.HandleKeyDown(ebiten.KeyA)
	s.Animator().Finish()
	if s.Mode() != ModeNormal || s.Zoomed() != nil {
		t.Fatal("any key should leave zoom")
	}
	if c.Position() != (Vec2{100, 100}) || c.Scale() != 1 || c.Node.ZIndex != z {
		t.Errorf("after zoom out: pos %v scale %v z %d", c.Position(), c.Scale(), c.Node.ZIndex)
	}
}

func TestZoomExitsOnClick(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	other := addCard(s, 400, 400)
	s.Select(c)
	s.EnterZoom()
	s.Animator().Finish()

	click(s, Vec2{400, 400})
	if s.Mode() != ModeNormal {
		t.Error("a click should leave zoom")
	}
	if s.IsSelected(other) {
		t.Error("the click that leaves zoom should not select")
	}
}

func TestModesAreExclusive(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	s.Select(c)
	s.EnterZoom()

	s.ToggleConnectMode()
	if s.Mode() != ModeConnect || s.Zoomed() != nil {
		t.Fatalf("mode = %v zoomed = %v, want connect without zoom", s.Mode(), s.Zoomed())
	}
	if !s.EnterZoom() {
		t.Fatal("zoom should be allowed from connect mode")
	}
	if s.Mode() != ModeZoom {
		t.Errorf("mode = %v, want zoom", s.Mode())
	}

	s.SetMoveMode(true)
	if s.Mode() != ModeZoom || !s.MoveMode() {
		t.Error("move mode should sit underneath the overlay")
	}
}

func TestConnectModeLinks(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	r := addRack(s, 600, 600)
	tbl := addTable(s, 800, 200)

	s.HandleKeyDown(ebiten.KeyC)
	if s.Mode() != ModeConnect {
		t.Fatal("C should enter connect mode")
	}

	dragTo(s, Vec2{200, 200}, Vec2{600, 600})
	if !d.IsConnected(r) {
		t.Fatal("dragging from a deck onto a rack should connect them")
	}
	if _, _, ok := s.LinkLine(); ok {
		t.Error("link line should be gone after release")
	}

	dragTo(s, Vec2{800, 200}, Vec2{200, 200})
	if tbl.DiscardDeck() != d {
		t.Fatal("dragging from a table onto a deck should set its discard deck")
	}

	conns := s.Connections()
	if len(conns) != 2 {
		t.Fatalf("connections = %d, want 2", len(conns))
	}
	if conns[0].Discard || !conns[1].Discard {
		t.Error("discard link should be flagged")
	}

	// clicking a line cuts it
	click(s, Vec2{400, 400})
	if d.IsConnected(r) {
		t.Error("clicking the deck to rack line should disconnect")
	}
	click(s, Vec2{500, 200})
	if tbl.DiscardDeck() != nil {
		t.Error("clicking the discard line should unlink")
	}

	s.HandleKeyDown(ebiten.KeyC)
	if s.Mode() != ModeNormal {
		t.Error("C should leave connect mode")
	}
}

func TestConnectModeLinkLineFollowsPointer(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	s.ToggleConnectMode()

	s.HandleMouseDown(Vec2{200, 200}, MouseButtonLeft)
	s.HandleMouseMove(Vec2{300, 350})
	from, to, ok := s.LinkLine()
	if !ok || from != d.Position() || to != (Vec2{300, 350}) {
		t.Errorf("LinkLine = %v %v %v", from, to, ok)
	}
	s.HandleMouseUp(Vec2{300, 350}, MouseButtonLeft)
	if len(d.ConnectedHolders()) != 0 {
		t.Error("releasing over nothing should not connect")
	}
}

func TestConnectModeIgnoresCommands(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	s.Select(c)
	s.ToggleConnectMode()
	s.HandleKeyDown(ebiten.KeyDelete)
	if len(s.Cards()) != 1 {
		t.Error("delete should be ignored in connect mode")
	}
	s.HandleKeyDown(ebiten.KeyEscape)
	if s.Mode() != ModeNormal {
		t.Error("escape should leave connect mode")
	}
}

func TestDeleteSelection(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	c := addCard(s, 0, 0)
	r.AddCard(c)
	s.Animator().Finish()

	s.Select(c)
	s.HandleKeyDown(ebiten.KeyDelete)
	if len(s.Cards()) != 0 || r.Has(c) {
		t.Fatal("deleted card should leave the scene and the rack")
	}
	if !c.Node.IsDisposed() {
		t.Error("deleted card's node should be disposed")
	}
}

func TestDeleteHolderClearsLinks(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	other := addDeck(s, 200, 500)
	r := addRack(s, 600, 600)
	tbl := addTable(s, 800, 200)
	d.ConnectHolder(r)
	other.ConnectHolder(d)
	tbl.SetDiscardDeck(d)

	s.SetMoveMode(true)
	s.Select(d)
	s.DeleteSelection()
	if tbl.DiscardDeck() != nil {
		t.Error("table should lose its link to the deleted deck")
	}
	if other.IsConnected(d) {
		t.Error("other decks should stop dealing to the deleted deck")
	}
	if len(s.Decks()) != 1 {
		t.Errorf("decks = %d, want 1", len(s.Decks()))
	}

	s.Remove(r)
	if len(s.Racks()) != 0 {
		t.Error("Remove should drop the rack")
	}
}

func TestCopySelection(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	c.SetFaceUp(true)
	c.Label = "ace"
	s.Select(c)

	s.HandleKeyDown(ebiten.KeyV)
	if len(s.Cards()) != 2 {
		t.Fatalf("cards = %d, want 2", len(s.Cards()))
	}
	cp := s.Cards()[1]
	if cp == c || cp.ID == c.ID {
		t.Fatal("copy should be a new card")
	}
	if cp.Position() != (Vec2{120, 120}) || !cp.IsFaceUp() || cp.Label != "ace" {
		t.Errorf("copy at %v faceUp=%v label=%q", cp.Position(), cp.IsFaceUp(), cp.Label)
	}
	if s.IsSelected(c) || !s.IsSelected(cp) {
		t.Error("the copy should replace the original in the selection")
	}
}

func TestCopyHolderIsEmpty(t *testing.T) {
	s := newTestScene()
	r := addRack(s, 400, 500)
	r.AddCard(addCard(s, 0, 0))
	s.SetMoveMode(true)
	s.Select(r)
	s.CopySelection()

	if len(s.Racks()) != 2 {
		t.Fatalf("racks = %d, want 2", len(s.Racks()))
	}
	cp := s.Racks()[1]
	if cp.Len() != 0 || cp.Size() != r.Size() {
		t.Errorf("copied rack holds %d cards, size %v", cp.Len(), cp.Size())
	}
}

func TestButtonsOutsideMoveMode(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	ctr := NewCounter(nil)
	ctr.SetPosition(Vec2{500, 500})
	s.Add(ctr)

	click(s, Vec2{164.75, 176.5})
	if d.DealAmount() != 2 {
		t.Errorf("DealAmount = %d, want 2", d.DealAmount())
	}

	click(s, Vec2{570, 470})
	click(s, Vec2{570, 470})
	if ctr.Value() != 2 {
		t.Errorf("counter = %d, want 2", ctr.Value())
	}
	click(s, Vec2{570, 500})
	if ctr.Value() != 1 {
		t.Errorf("counter = %d after decrement, want 1", ctr.Value())
	}
	click(s, Vec2{570, 530})
	if ctr.Value() != 0 {
		t.Errorf("counter = %d after reset, want 0", ctr.Value())
	}

	s.SetMoveMode(true)
	click(s, Vec2{570, 470})
	if ctr.Value() != 0 {
		t.Error("buttons should not fire in move mode")
	}
	if !s.IsSelected(ctr) {
		t.Error("clicking a counter button in move mode should pick the counter")
	}
}

func TestShiftClickSelection(t *testing.T) {
	s := newTestScene()
	a := addCard(s, 100, 100)
	b := addCard(s, 300, 100)

	click(s, Vec2{100, 100})
	s.HandleKeyDown(ebiten.KeyShiftLeft)
	click(s, Vec2{300, 100})
	if !s.IsSelected(a) || !s.IsSelected(b) {
		t.Fatal("shift click should add to the selection")
	}
	click(s, Vec2{100, 100})
	if s.IsSelected(a) || a.IsHighlighted() {
		t.Error("shift click on a selected card should deselect it")
	}
	if a.Position() != (Vec2{100, 100}) || b.Position() != (Vec2{300, 100}) {
		t.Error("shift clicks should not move anything")
	}

	// a shift marquee keeps the selection
	s.HandleMouseDown(Vec2{50, 40}, MouseButtonLeft)
	s.HandleMouseMove(Vec2{150, 160})
	s.HandleMouseUp(Vec2{150, 160}, MouseButtonLeft)
	if !s.IsSelected(a) || !s.IsSelected(b) {
		t.Error("shift marquee should add to the selection")
	}
	s.HandleKeyUp(ebiten.KeyShiftLeft)

	click(s, Vec2{300, 100})
	if !s.IsSelected(a) || !s.IsSelected(b) {
		t.Error("a plain click on a selected card keeps the group")
	}
}

func TestTextEditing(t *testing.T) {
	s := newTestScene()
	txt := s.AddText("hi", Vec2{300, 300})
	click(s, Vec2{300, 300})
	s.HandleKeyDown(ebiten.KeyEnter)
	if s.Editing() != txt || !txt.IsEditing() {
		t.Fatal("enter on a selected text should start editing")
	}

	s.HandleChars([]rune("!?"))
	s.HandleKeyDown(ebiten.KeyBackspace)
	if txt.Text() != "hi!" {
		t.Errorf("text = %q, want %q", txt.Text(), "hi!")
	}
	if len(s.Texts()) != 1 {
		t.Fatal("backspace while editing should not delete the object")
	}

	s.HandleKeyDown(ebiten.KeyEnter)
	if s.Editing() != nil || txt.IsEditing() {
		t.Fatal("enter should stop editing")
	}
	if !txt.IsHighlighted() {
		t.Error("selected text should stay highlighted after editing")
	}
}

func TestClickElsewhereStopsEditing(t *testing.T) {
	s := newTestScene()
	txt := s.AddText("", Vec2{300, 300})
	s.StartEditing(txt)
	for range 4 {
		txt.Backspace()
	}
	click(s, Vec2{800, 700})
	if s.Editing() != nil {
		t.Fatal("clicking elsewhere should stop editing")
	}
	if txt.Text() != "Text" {
		t.Errorf("empty text = %q, want the placeholder", txt.Text())
	}
	if txt.IsHighlighted() {
		t.Error("unselected text should not stay highlighted")
	}
}

func TestScrollAndKeyRotate(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 100, 100)
	s.Select(c)

	s.HandleScroll(1)
	s.Animator().Finish()
	if c.Rotation() != 15 {
		t.Errorf("rotation = %v after scroll, want 15", c.Rotation())
	}
	s.HandleScroll(-2)
	s.Animator().Finish()
	if c.Rotation() != 0 {
		t.Errorf("rotation = %v after scroll back, want 0", c.Rotation())
	}

	s.HandleKeyDown(ebiten.KeyR)
	s.Animator().Finish()
	if c.Rotation() != 90 {
		t.Errorf("rotation = %v after R, want 90", c.Rotation())
	}
}

func TestDealKeyTargetsDeckUnderPointer(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	r1 := addRack(s, 600, 100)
	r2 := addRack(s, 600, 600)
	d.ConnectHolder(r1)
	d.ConnectHolder(r2)
	for range 5 {
		d.AddCard(addCard(s, 0, 0))
	}
	d.SetDealAmount(3)

	s.HandleKeyDown(ebiten.KeyD)
	if r1.Len()+r2.Len() != 0 {
		t.Fatal("deal with no target deck should do nothing")
	}

	s.HandleMouseMove(Vec2{200, 200})
	s.HandleKeyDown(ebiten.KeyD)
	if d.Len() != 0 {
		t.Errorf("deck = %d, cards should leave immediately", d.Len())
	}
	s.Animator().Finish()
	if r1.Len() != 3 || r2.Len() != 2 {
		t.Errorf("racks = %d and %d, want 3 and 2", r1.Len(), r2.Len())
	}
}

func TestShuffleKeyTargetsSelectedDecks(t *testing.T) {
	s := newTestScene()
	d := addDeck(s, 200, 200)
	for range 4 {
		d.AddCard(addCard(s, 0, 0))
	}
	d.SetShuffler(reverseShuffler{})
	first := d.Cards()[0]

	s.SetMoveMode(true)
	s.Select(d)
	s.HandleKeyDown(ebiten.KeyS)
	if d.Cards()[3] != first {
		t.Error("shuffle should permute the selected deck")
	}
	s.Animator().Finish()
	for i, c := range d.Cards() {
		if c.Position() != d.Position() {
			t.Errorf("card %d at %v after shuffle, want the deck", i, c.Position())
		}
	}
}

func TestStatusLine(t *testing.T) {
	s := newTestScene()
	addCard(s, 0, 0)
	s.SetMoveMode(true)
	want := "mode: normal  move: on  selected: 0  cards: 1"
	if got := s.StatusLine(); got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
}

func TestSceneClose(t *testing.T) {
	s := newTestScene()
	c := addCard(s, 0, 0)
	s.Close()
	if !c.Node.IsDisposed() || len(s.Cards()) != 0 {
		t.Error("Close should dispose every object")
	}
	if err := s.Update(); err != nil {
		t.Errorf("Update after Close = %v", err)
	}
	s.Close()
}

type stubLoader struct {
	missing string
	loaded  []string
}

func (l *stubLoader) Load(path string) (*ebiten.Image, error) {
	if path == l.missing {
		return nil, ErrMissingAsset
	}
	l.loaded = append(l.loaded, path)
	return nil, nil
}

func TestPopulate(t *testing.T) {
	s := newTestScene()
	l := &stubLoader{missing: "gone.png"}
	s.SetLoader(l)

	cards := s.Populate([]CardSpec{
		{ID: "a", X: 10, Y: 20, Front: "a.png", Back: "back.png", Width: 50, Height: 70, Rotation: 90, FaceUp: true},
		{ID: "b", Front: "gone.png", Back: "back.png"},
		{ID: "", X: 30, Front: "dir/c.png"},
	})
	if len(cards) != 2 || len(s.Cards()) != 2 {
		t.Fatalf("populated %d cards, want 2", len(cards))
	}
	a := cards[0]
	if a.Label != "a" || a.Position() != (Vec2{10, 20}) || !a.IsFaceUp() {
		t.Errorf("card a: label %q pos %v faceUp %v", a.Label, a.Position(), a.IsFaceUp())
	}
	if a.Size() != (Vec2{50, 70}) || a.Rotation() != 90 {
		t.Errorf("card a: size %v rotation %v", a.Size(), a.Rotation())
	}
	c := cards[1]
	if c.Label != "c" || c.IsFaceUp() || c.Size() != CardSize {
		t.Errorf("card c: label %q faceUp %v size %v", c.Label, c.IsFaceUp(), c.Size())
	}
}
