package tabletop

import (
	"log/slog"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Z bases per collection. Objects in a collection get base+index; the last
// object of a collection is on top.
const (
	zTable   = -1000
	zRack    = -500
	zDeck    = -200
	zCard    = 1000
	zToken   = 1200
	zCounter = 1500
	zText    = 1600
	zZoomed  = 10000
)

// Mode is the exclusive interaction overlay. Move mode is a separate toggle
// that can be on underneath any of them.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeZoom
	ModeConnect
)

func (m Mode) String() string {
	switch m {
	case ModeZoom:
		return "zoom"
	case ModeConnect:
		return "connect"
	}
	return "normal"
}

// Scene owns every object on the table, routes input to them and draws the
// result. All methods must be called from the game loop goroutine.
type Scene struct {
	cfg    Config
	log    *slog.Logger
	root   *Node
	anim   *Animator
	loader TextureLoader

	cards    []*Card
	decks    []*Deck
	racks    []*Rack
	tables   []*Table
	counters []*Counter
	tokens   []*Token
	texts    []*Text

	selected []Object
	hovered  Object
	drag     *dragState
	marquee  *marqueeState
	link     *linkState
	zoom     *zoomState
	editing  *Text

	mode     Mode
	moveMode bool
	pointer  Vec2
	leftDown bool
	mods     KeyModifiers

	// input plumbing
	injectQueue     []syntheticEvent
	script          *Script
	screenshotQueue []string
	keyBuf          []ebiten.Key
	runeBuf         []rune
	commands        []drawCommand

	closed bool
}

// NewScene creates an empty scene. A nil Logger in cfg uses slog.Default().
func NewScene(cfg Config) *Scene {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Keys.Delete == nil {
		cfg.Keys = DefaultKeyBindings()
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Debug {
		SetDebugMode(true)
	}
	return &Scene{
		cfg:  cfg,
		log:  logger,
		root: NewContainer("root"),
		anim: NewAnimator(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Animator returns the scene's animator.
func (s *Scene) Animator() *Animator { return s.anim }

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.cfg }

// SetLoader sets the loader used by the Load* helpers.
func (s *Scene) SetLoader(l TextureLoader) { s.loader = l }

// Mode returns the active overlay mode.
func (s *Scene) Mode() Mode { return s.mode }

// MoveMode reports whether holders and counters can be dragged.
func (s *Scene) MoveMode() bool { return s.moveMode }

// Cards returns the card collection in z order. The slice MUST NOT be mutated.
func (s *Scene) Cards() []*Card { return s.cards }

// Decks returns the deck collection. The slice MUST NOT be mutated.
func (s *Scene) Decks() []*Deck { return s.decks }

// Racks returns the rack collection. The slice MUST NOT be mutated.
func (s *Scene) Racks() []*Rack { return s.racks }

// Tables returns the table collection. The slice MUST NOT be mutated.
func (s *Scene) Tables() []*Table { return s.tables }

// Counters returns the counter collection. The slice MUST NOT be mutated.
func (s *Scene) Counters() []*Counter { return s.counters }

// Tokens returns the token collection. The slice MUST NOT be mutated.
func (s *Scene) Tokens() []*Token { return s.tokens }

// Texts returns the text collection. The slice MUST NOT be mutated.
func (s *Scene) Texts() []*Text { return s.texts }

// Selected returns the current selection. The slice MUST NOT be mutated.
func (s *Scene) Selected() []Object { return s.selected }

// Dragged returns the objects being dragged. Empty outside a left-button drag.
func (s *Scene) Dragged() []Object {
	if s.drag == nil {
		return nil
	}
	return s.drag.objects
}

// IsSelected reports whether o is selected.
func (s *Scene) IsSelected(o Object) bool {
	return slices.Contains(s.selected, o)
}

// Editing returns the text object being edited, or nil.
func (s *Scene) Editing() *Text { return s.editing }

// --- Collections ---

// Add places o on the table. Adding an object twice is a no-op.
func (s *Scene) Add(o Object) {
	if o == nil || s.contains(o) {
		return
	}
	b := o.Base()
	b.SetAnimator(s.anim)
	switch v := o.(type) {
	case *Card:
		s.cards = append(s.cards, v)
	case *Deck:
		s.decks = append(s.decks, v)
	case *Rack:
		s.racks = append(s.racks, v)
	case *Table:
		s.tables = append(s.tables, v)
	case *Counter:
		s.counters = append(s.counters, v)
	case *Token:
		s.tokens = append(s.tokens, v)
	case *Text:
		s.texts = append(s.texts, v)
	default:
		s.log.Warn("unsupported object", "kind", o.Kind())
		return
	}
	if !s.alwaysDraggable(o) {
		b.EnableDragging(s.moveMode)
	}
	s.root.AddChild(b.Node)
	s.renumber(o.Kind())
}

func (s *Scene) contains(o Object) bool {
	switch v := o.(type) {
	case *Card:
		return slices.Contains(s.cards, v)
	case *Deck:
		return slices.Contains(s.decks, v)
	case *Rack:
		return slices.Contains(s.racks, v)
	case *Table:
		return slices.Contains(s.tables, v)
	case *Counter:
		return slices.Contains(s.counters, v)
	case *Token:
		return slices.Contains(s.tokens, v)
	case *Text:
		return slices.Contains(s.texts, v)
	}
	return false
}

// alwaysDraggable reports whether o can be dragged outside move mode.
func (s *Scene) alwaysDraggable(o Object) bool {
	switch o.Kind() {
	case KindCard, KindToken, KindText:
		return true
	}
	return false
}

func removeItem[T comparable](objs []T, o T) ([]T, bool) {
	i := slices.Index(objs, o)
	if i < 0 {
		return objs, false
	}
	return slices.Delete(objs, i, i+1), true
}

// removeFromCollection drops o from its collection and reports whether it was
// present.
func (s *Scene) removeFromCollection(o Object) bool {
	var ok bool
	switch v := o.(type) {
	case *Card:
		s.cards, ok = removeItem(s.cards, v)
	case *Deck:
		s.decks, ok = removeItem(s.decks, v)
	case *Rack:
		s.racks, ok = removeItem(s.racks, v)
	case *Table:
		s.tables, ok = removeItem(s.tables, v)
	case *Counter:
		s.counters, ok = removeItem(s.counters, v)
	case *Token:
		s.tokens, ok = removeItem(s.tokens, v)
	case *Text:
		s.texts, ok = removeItem(s.texts, v)
	}
	return ok
}

// --- Z order ---

func renumber[T Object](objs []T, base int) {
	for i, o := range objs {
		o.Base().Node.SetZIndex(base + i)
	}
}

// renumber reassigns base+index z-order across one collection. Held cards
// keep the z-order their holder gave them.
func (s *Scene) renumber(k Kind) {
	switch k {
	case KindCard:
		for i, c := range s.cards {
			if s.holderOf(c) == nil {
				c.Node.SetZIndex(zCard + i)
			}
		}
	case KindDeck:
		renumber(s.decks, zDeck)
	case KindRack:
		renumber(s.racks, zRack)
	case KindTable:
		renumber(s.tables, zTable)
	case KindCounter:
		renumber(s.counters, zCounter)
	case KindToken:
		renumber(s.tokens, zToken)
	case KindText:
		renumber(s.texts, zText)
	}
}

func moveToEnd[T comparable](objs []T, o T) bool {
	i := slices.Index(objs, o)
	if i < 0 {
		return false
	}
	copy(objs[i:], objs[i+1:])
	objs[len(objs)-1] = o
	return true
}

// pushToTop moves o to the end of its collection and renumbers it, so o is
// drawn and hit-tested above its siblings.
func (s *Scene) pushToTop(o Object) {
	var moved bool
	switch v := o.(type) {
	case *Card:
		moved = moveToEnd(s.cards, v)
	case *Deck:
		moved = moveToEnd(s.decks, v)
	case *Rack:
		moved = moveToEnd(s.racks, v)
	case *Table:
		moved = moveToEnd(s.tables, v)
	case *Counter:
		moved = moveToEnd(s.counters, v)
	case *Token:
		moved = moveToEnd(s.tokens, v)
	case *Text:
		moved = moveToEnd(s.texts, v)
	}
	if moved {
		s.renumber(o.Kind())
	}
}

// --- Enumeration and hit testing ---

// Objects returns every object: cards first, then the other collections.
func (s *Scene) Objects() []Object {
	out := make([]Object, 0, len(s.cards)+len(s.decks)+len(s.racks)+len(s.tables)+
		len(s.counters)+len(s.tokens)+len(s.texts))
	for _, c := range s.cards {
		out = append(out, c)
	}
	return append(out, s.nonCards()...)
}

func (s *Scene) nonCards() []Object {
	var out []Object
	for _, o := range s.tables {
		out = append(out, o)
	}
	for _, o := range s.racks {
		out = append(out, o)
	}
	for _, o := range s.decks {
		out = append(out, o)
	}
	for _, o := range s.tokens {
		out = append(out, o)
	}
	for _, o := range s.counters {
		out = append(out, o)
	}
	for _, o := range s.texts {
		out = append(out, o)
	}
	return out
}

// Holders returns every card holder.
func (s *Scene) Holders() []CardHolder {
	var out []CardHolder
	for _, h := range s.tables {
		out = append(out, h)
	}
	for _, h := range s.racks {
		out = append(out, h)
	}
	for _, h := range s.decks {
		out = append(out, h)
	}
	return out
}

// topmostFirst orders objects by descending z. Among equal z the later
// object wins, matching draw order.
func topmostFirst[T Object](objs []T) []T {
	out := slices.Clone(objs)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int {
		return b.Base().Node.ZIndex - a.Base().Node.ZIndex
	})
	return out
}

// CardAt returns the topmost card under p, or nil.
func (s *Scene) CardAt(p Vec2) *Card {
	for _, c := range topmostFirst(s.cards) {
		if c.ContainsPoint(p) {
			return c
		}
	}
	return nil
}

// ObjectAt returns the topmost object under p. Cards are tested before every
// other kind.
func (s *Scene) ObjectAt(p Vec2) Object {
	if c := s.CardAt(p); c != nil {
		return c
	}
	for _, o := range topmostFirst(s.nonCards()) {
		if o.Base().ContainsPoint(p) {
			return o
		}
	}
	return nil
}

// HolderAt returns the topmost holder under p that is not in exclude.
func (s *Scene) HolderAt(p Vec2, exclude ...Object) CardHolder {
	for _, h := range topmostFirst(s.Holders()) {
		if slices.ContainsFunc(exclude, func(o Object) bool { return o.Base() == h.Base() }) {
			continue
		}
		if h.Base().ContainsPoint(p) {
			return h
		}
	}
	return nil
}

// DeckAt returns the topmost deck under p, or nil.
func (s *Scene) DeckAt(p Vec2) *Deck {
	for _, d := range topmostFirst(s.decks) {
		if d.ContainsPoint(p) {
			return d
		}
	}
	return nil
}

// TableAt returns the topmost table under p, or nil.
func (s *Scene) TableAt(p Vec2) *Table {
	for _, t := range topmostFirst(s.tables) {
		if t.ContainsPoint(p) {
			return t
		}
	}
	return nil
}

// buttonAt finds a deck or counter button under p.
func (s *Scene) buttonAt(p Vec2) (ButtonPanel, Button) {
	var panels []Object
	for _, c := range s.counters {
		panels = append(panels, c)
	}
	for _, d := range s.decks {
		panels = append(panels, d)
	}
	for _, o := range topmostFirst(panels) {
		bp := o.(ButtonPanel)
		if b := bp.ButtonAt(p); b != ButtonNone {
			return bp, b
		}
	}
	return nil, ButtonNone
}

// holderOf returns the holder that has c, or nil.
func (s *Scene) holderOf(c *Card) CardHolder {
	for _, h := range s.Holders() {
		if h.Holds().Has(c) {
			return h
		}
	}
	return nil
}

// releaseCard takes c out of every holder and returns the last one it was in.
func (s *Scene) releaseCard(c *Card) CardHolder {
	var from CardHolder
	for _, h := range s.Holders() {
		if h.Holds().Has(c) {
			h.RemoveCard(c)
			from = h
		}
	}
	return from
}

// Close cancels every transition and disposes the display tree. The scene
// must not be used afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.anim.CancelAll()
	s.root.Dispose()
	s.cards, s.decks, s.racks, s.tables = nil, nil, nil, nil
	s.counters, s.tokens, s.texts = nil, nil, nil
	s.selected, s.hovered, s.drag, s.marquee, s.link, s.zoom, s.editing = nil, nil, nil, nil, nil, nil, nil
	s.log.Debug("scene closed")
}
