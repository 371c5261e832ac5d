package tabletop

import (
	"slices"
)

// dragState tracks one left-button drag of the selection.
type dragState struct {
	objects []Object
	// homes remembers the holder and slot each card came from so a
	// cancelled drag can put it back.
	homes map[*Card]cardHome
	// held remembers the cards a picked-up holder released.
	held map[*Holder][]*Card
}

type cardHome struct {
	holder CardHolder
	index  int
}

// marqueeState is an in-progress rectangle selection.
type marqueeState struct {
	start, end Vec2
}

// Rect returns the marquee rectangle.
func (m *marqueeState) Rect() Rect { return RectFromPoints(m.start, m.end) }

// --- Selection ---

func (s *Scene) selectObject(o Object) {
	if s.IsSelected(o) {
		return
	}
	s.selected = append(s.selected, o)
	o.Base().SetHighlight(true)
}

// ClearSelection un-highlights and forgets every selected object.
func (s *Scene) ClearSelection() {
	for _, o := range s.selected {
		o.Base().SetHighlight(false)
		if o == s.hovered {
			s.hovered = nil
		}
	}
	s.selected = s.selected[:0]
}

func (s *Scene) deselect(o Object) {
	var ok bool
	if s.selected, ok = removeItem(s.selected, o); ok && o != s.hovered {
		o.Base().SetHighlight(false)
	}
}

// Select replaces the selection with objs. Objects that cannot currently be
// dragged are skipped.
func (s *Scene) Select(objs ...Object) {
	s.ClearSelection()
	for _, o := range objs {
		if o != nil && o.Base().IsDraggable() && s.contains(o) {
			s.selectObject(o)
		}
	}
}

func (s *Scene) selectedCards() []*Card {
	var out []*Card
	for _, o := range s.selected {
		if c, ok := o.(*Card); ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *Scene) selectedDecks() []*Deck {
	var out []*Deck
	for _, o := range s.selected {
		if d, ok := o.(*Deck); ok {
			out = append(out, d)
		}
	}
	return out
}

// isEditing reports whether o is the text object being edited.
func (s *Scene) isEditing(o Object) bool {
	t, ok := o.(*Text)
	return ok && t != nil && t == s.editing
}

// --- Hover ---

// updateHover highlights the draggable object under p. A selected object
// keeps its highlight when the pointer leaves it.
func (s *Scene) updateHover(p Vec2) {
	var h Object
	if o := s.ObjectAt(p); o != nil && o.Base().IsDraggable() {
		h = o
	}
	if h == s.hovered {
		return
	}
	if s.hovered != nil && !s.IsSelected(s.hovered) && !s.isEditing(s.hovered) {
		s.hovered.Base().SetHighlight(false)
	}
	if h != nil {
		h.Base().SetHighlight(true)
	}
	s.hovered = h
}

func (s *Scene) clearHover() {
	if s.hovered != nil && !s.IsSelected(s.hovered) && !s.isEditing(s.hovered) {
		s.hovered.Base().SetHighlight(false)
	}
	s.hovered = nil
}

// --- Mouse ---

// HandleMouseDown routes a button press at world point p.
func (s *Scene) HandleMouseDown(p Vec2, b MouseButton) {
	s.pointer = p
	s.log.Debug("mouse down", "x", p.X, "y", p.Y, "button", b, "mode", s.mode)

	if s.mode == ModeZoom {
		s.ExitZoom()
		return
	}
	if s.editing != nil && b == MouseButtonLeft && !s.isEditing(s.ObjectAt(p)) {
		s.StopEditing()
	}

	switch b {
	case MouseButtonLeft:
		if s.mode == ModeConnect {
			s.connectPress(p)
			return
		}
		s.leftDown = true
		s.leftPress(p)
	case MouseButtonRight:
		if s.mode != ModeNormal || s.drag != nil {
			return
		}
		s.rightPress(p)
	}
}

func (s *Scene) leftPress(p Vec2) {
	if !s.moveMode {
		if bp, btn := s.buttonAt(p); bp != nil {
			bp.Press(btn)
			s.leftDown = false
			s.log.Debug("button", "button", btn)
			return
		}
	}

	additive := s.mods&ModShift != 0
	if o := s.ObjectAt(p); o != nil && o.Base().IsDraggable() {
		switch {
		case additive && s.IsSelected(o):
			s.deselect(o)
			s.leftDown = false
			return
		case additive:
			s.selectObject(o)
		case !s.IsSelected(o):
			s.ClearSelection()
			s.selectObject(o)
		}
		s.beginDrag(p)
		return
	}

	if !additive {
		s.ClearSelection()
	}
	s.marquee = &marqueeState{start: p, end: p}
}

func (s *Scene) rightPress(p Vec2) {
	c := s.CardAt(p)
	if c == nil {
		return
	}
	if !s.IsSelected(c) {
		c.Flip(DefaultFlipDuration)
		return
	}
	for _, sc := range s.selectedCards() {
		sc.Flip(DefaultFlipDuration)
	}
}

// HandleMouseMove routes a pointer move to world point p.
func (s *Scene) HandleMouseMove(p Vec2) {
	s.pointer = p
	switch {
	case s.mode == ModeZoom:
		return
	case s.mode == ModeConnect:
		s.clearHover()
		return
	case s.drag != nil:
		for _, o := range s.drag.objects {
			b := o.Base()
			b.SetPosition(p.Sub(b.DragOffset()))
		}
	case s.marquee != nil:
		s.marquee.end = p
		return
	}
	s.updateHover(p)
}

// HandleMouseUp routes a button release at world point p.
func (s *Scene) HandleMouseUp(p Vec2, b MouseButton) {
	s.pointer = p
	if b != MouseButtonLeft {
		return
	}
	s.log.Debug("mouse up", "x", p.X, "y", p.Y, "mode", s.mode)
	if s.mode == ModeConnect {
		s.connectRelease(p)
		return
	}
	if !s.leftDown {
		return
	}
	s.leftDown = false

	switch {
	case s.drag != nil:
		s.drop(p)
	case s.marquee != nil:
		s.finishMarquee()
	}
}

// HandleScroll rotates the selection by one wheel step per notch.
func (s *Scene) HandleScroll(dy float64) {
	if s.mode != ModeNormal || s.drag != nil || dy == 0 {
		return
	}
	step := s.cfg.ScrollRotation
	if dy < 0 {
		step = -step
	}
	for _, o := range s.selected {
		o.Base().RotateSmooth(step)
		if h, ok := o.(CardHolder); ok {
			h.Relayout()
		}
	}
}

// --- Drag ---

func (s *Scene) beginDrag(p Vec2) {
	ds := &dragState{
		homes: make(map[*Card]cardHome),
		held:  make(map[*Holder][]*Card),
	}
	// slots are read before any card leaves, so releasing one card does not
	// shift the recorded index of the next
	for _, o := range s.selected {
		c, ok := o.(*Card)
		if !ok || !c.IsDraggable() {
			continue
		}
		if h := s.holderOf(c); h != nil {
			ds.homes[c] = cardHome{holder: h, index: slices.Index(h.Holds().Cards(), c)}
		}
	}
	for _, o := range s.selected {
		b := o.Base()
		if !b.IsDraggable() {
			continue
		}
		pos := b.Position()
		b.SetDragOffset(p.Sub(pos))
		b.SetOriginalPosition(pos)
		s.anim.Cancel(b.Node, TagMove)
		s.anim.Cancel(b.Node, TagDeal)

		switch v := o.(type) {
		case *Card:
			s.releaseCard(v)
		case CardHolder:
			ds.held[v.Holds()] = slices.Clone(v.Holds().Cards())
		}
		o.StartDragging()
		s.pushToTop(o)
		ds.objects = append(ds.objects, o)
	}
	if len(ds.objects) > 0 {
		s.drag = ds
	}
}

// drop ends the drag at p. Dragged cards land in the topmost holder under
// the pointer, if any; moved holders gather their cards.
func (s *Scene) drop(p Vec2) {
	ds := s.drag
	s.drag = nil

	var cards []*Card
	for _, o := range ds.objects {
		o.Base().StopDragging()
		switch v := o.(type) {
		case *Card:
			cards = append(cards, v)
		case CardHolder:
			v.Relayout()
		}
	}
	if len(cards) == 0 {
		return
	}
	target := s.HolderAt(p, ds.objects...)
	if target == nil {
		return
	}
	if len(cards) == 1 {
		target.AddCard(cards[0])
	} else {
		target.AddCards(cards, p)
	}
	s.log.Debug("drop", "cards", len(cards), "holder", target.Kind(), "id", target.Base().ID)
}

// CancelDrag puts every dragged object back where the drag began, returning
// cards to the slots they were taken from. Cards go back by index, so a table
// does not sweep its play and ties between slots cannot reorder a rack.
func (s *Scene) CancelDrag() {
	ds := s.drag
	if ds == nil {
		return
	}
	s.drag = nil
	s.leftDown = false
	for _, o := range ds.objects {
		b := o.Base()
		b.StopDragging()
		b.SetPosition(b.OriginalPosition())
	}
	s.restoreHomes(ds)
	for _, o := range ds.objects {
		switch v := o.(type) {
		case *Deck:
			v.Relayout()
		case CardHolder:
			h := v.Holds()
			if prev := ds.held[h]; len(prev) > 0 && h.Len() == 0 {
				h.AddCardsAt(prev, 0)
			}
		}
	}
}

// restoreHomes re-inserts the dragged cards in ascending original index per
// holder, which rebuilds each holder's pre-drag order.
func (s *Scene) restoreHomes(ds *dragState) {
	var cards []*Card
	for _, o := range ds.objects {
		if c, ok := o.(*Card); ok {
			if home, ok := ds.homes[c]; ok && s.contains(home.holder) {
				cards = append(cards, c)
			}
		}
	}
	slices.SortStableFunc(cards, func(a, b *Card) int {
		return ds.homes[a].index - ds.homes[b].index
	})
	for _, c := range cards {
		home := ds.homes[c]
		home.holder.Holds().AddCardAt(c, home.index)
	}
}

// --- Marquee ---

// Marquee returns the in-progress selection rectangle.
func (s *Scene) Marquee() (Rect, bool) {
	if s.marquee == nil {
		return Rect{}, false
	}
	return s.marquee.Rect(), true
}

// finishMarquee selects every draggable object whose box lies entirely
// inside the rectangle.
func (s *Scene) finishMarquee() {
	r := s.marquee.Rect()
	s.marquee = nil
	for _, o := range s.Objects() {
		b := o.Base()
		if b.IsDraggable() && r.ContainsRect(b.BoundingBox()) {
			s.selectObject(o)
		}
	}
	s.log.Debug("marquee", "selected", len(s.selected))
}
