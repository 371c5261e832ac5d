package tabletop

import (
	"github.com/tanema/gween/ease"
)

// zoomState remembers what a zoomed card looked like before it was zoomed.
type zoomState struct {
	card  *Card
	pos   Vec2
	scale float64
	z     int
}

// linkState is a connection being dragged out in connect mode. Exactly one of
// deck and table is set.
type linkState struct {
	deck  *Deck
	table *Table
}

func (l *linkState) from() Vec2 {
	if l.deck != nil {
		return l.deck.WorldPosition()
	}
	return l.table.WorldPosition()
}

// Connection is one line drawn in connect mode.
type Connection struct {
	From, To Vec2
	// Discard is set for a table to discard-deck link.
	Discard bool
}

// --- Zoom ---

// Zoomed returns the zoomed card, or nil.
func (s *Scene) Zoomed() *Card {
	if s.zoom == nil {
		return nil
	}
	return s.zoom.card
}

// EnterZoom magnifies the single selected card at the centre of the screen.
// Ignored unless exactly one card is selected. Reports whether zoom began.
func (s *Scene) EnterZoom() bool {
	if s.mode == ModeZoom || len(s.selected) != 1 {
		return false
	}
	c, ok := s.selected[0].(*Card)
	if !ok {
		return false
	}
	if s.mode == ModeConnect {
		s.exitConnect()
	}
	s.CancelDrag()
	s.marquee = nil

	s.zoom = &zoomState{card: c, pos: c.Position(), scale: c.Scale(), z: c.Node.ZIndex}
	s.mode = ModeZoom
	c.Node.SetZIndex(zZoomed)
	c.scale = s.cfg.ZoomScale

	n := c.Node
	centre := Vec2{float64(s.cfg.ScreenWidth) / 2, float64(s.cfg.ScreenHeight) / 2}
	target := c.displayScale()
	d := float32(s.cfg.MoveDuration)
	s.anim.Run(n, TagMove, Tween(func() *TweenGroup {
		return TweenTransform(n, centre.X, centre.Y, target, d, ease.OutQuad)
	}))
	s.log.Debug("zoom in", "card", c.ID)
	return true
}

// ExitZoom sends the zoomed card back to where it was. Its z-order is
// restored once it has landed.
func (s *Scene) ExitZoom() {
	zs := s.zoom
	if zs == nil {
		return
	}
	s.zoom = nil
	s.mode = ModeNormal

	c := zs.card
	c.scale = zs.scale
	n := c.Node
	target := c.displayScale()
	d := float32(s.cfg.MoveDuration)
	s.anim.Run(n, TagMove,
		Tween(func() *TweenGroup {
			return TweenTransform(n, zs.pos.X, zs.pos.Y, target, d, ease.OutQuad)
		}),
		Call(func() { n.SetZIndex(zs.z) }),
	)
	s.log.Debug("zoom out", "card", c.ID)
}

// ToggleZoom enters zoom or leaves it.
func (s *Scene) ToggleZoom() {
	if s.mode == ModeZoom {
		s.ExitZoom()
		return
	}
	s.EnterZoom()
}

// --- Move mode ---

// SetMoveMode turns move mode on or off. Holders and counters can only be
// dragged while it is on; turning it off drops them from the selection.
func (s *Scene) SetMoveMode(on bool) {
	if s.moveMode == on {
		return
	}
	s.CancelDrag()
	s.moveMode = on
	for _, o := range s.Objects() {
		if !s.alwaysDraggable(o) {
			o.Base().EnableDragging(on)
		}
	}
	if !on {
		keep := make([]Object, 0, len(s.selected))
		for _, o := range s.selected {
			if o.Base().IsDraggable() {
				keep = append(keep, o)
			}
		}
		s.Select(keep...)
		if s.hovered != nil && !s.hovered.Base().IsDraggable() {
			s.clearHover()
		}
	}
	s.log.Debug("move mode", "on", on)
}

// ToggleMoveMode flips move mode.
func (s *Scene) ToggleMoveMode() { s.SetMoveMode(!s.moveMode) }

// --- Connect mode ---

// ToggleConnectMode enters connect mode, leaving zoom first, or leaves it.
// Any drag, marquee or half-made connection is dropped either way.
func (s *Scene) ToggleConnectMode() {
	if s.mode == ModeConnect {
		s.exitConnect()
		return
	}
	s.ExitZoom()
	s.CancelDrag()
	s.marquee = nil
	s.link = nil
	s.clearHover()
	s.mode = ModeConnect
	s.log.Debug("connect mode", "on", true)
}

func (s *Scene) exitConnect() {
	s.link = nil
	s.mode = ModeNormal
	s.log.Debug("connect mode", "on", false)
}

// connectPress starts a connection from a deck or a table, or cuts the
// connection line under p.
func (s *Scene) connectPress(p Vec2) {
	if d := s.DeckAt(p); d != nil {
		s.link = &linkState{deck: d}
		return
	}
	if t := s.TableAt(p); t != nil {
		s.link = &linkState{table: t}
		return
	}
	thr := s.cfg.ConnectionHitThreshold
	for _, d := range s.decks {
		from := d.WorldPosition()
		for _, h := range d.ConnectedHolders() {
			if NearSegment(p, from, h.Base().WorldPosition(), thr) {
				d.DisconnectHolder(h)
				s.log.Debug("disconnect", "deck", d.ID, "holder", h.Base().ID)
				return
			}
		}
	}
	for _, t := range s.tables {
		if t.discard == nil {
			continue
		}
		if NearSegment(p, t.WorldPosition(), t.discard.WorldPosition(), thr) {
			s.log.Debug("unlink discard", "table", t.ID, "deck", t.discard.ID)
			t.SetDiscardDeck(nil)
			return
		}
	}
}

// connectRelease commits the connection being dragged if p is over a target.
func (s *Scene) connectRelease(p Vec2) {
	l := s.link
	s.link = nil
	if l == nil {
		return
	}
	if l.deck != nil {
		h := s.HolderAt(p, l.deck)
		if h != nil && l.deck.ConnectHolder(h) {
			s.log.Debug("connect", "deck", l.deck.ID, "holder", h.Base().ID, "kind", h.Kind())
		}
		return
	}
	if d := s.DeckAt(p); d != nil {
		l.table.SetDiscardDeck(d)
		s.log.Debug("link discard", "table", l.table.ID, "deck", d.ID)
	}
}

// Connections returns every deck to holder and table to discard line.
func (s *Scene) Connections() []Connection {
	var out []Connection
	for _, d := range s.decks {
		from := d.WorldPosition()
		for _, h := range d.ConnectedHolders() {
			out = append(out, Connection{From: from, To: h.Base().WorldPosition()})
		}
	}
	for _, t := range s.tables {
		if t.discard != nil {
			out = append(out, Connection{From: t.WorldPosition(), To: t.discard.WorldPosition(), Discard: true})
		}
	}
	return out
}

// LinkLine returns the connection being dragged, from its source to the
// pointer.
func (s *Scene) LinkLine() (from, to Vec2, ok bool) {
	if s.link == nil {
		return Vec2{}, Vec2{}, false
	}
	return s.link.from(), s.pointer, true
}

// --- Text editing ---

// StartEditing sends typed characters to t until editing stops.
func (s *Scene) StartEditing(t *Text) {
	if t == nil || t == s.editing || !s.contains(t) {
		return
	}
	s.StopEditing()
	s.editing = t
	t.StartEditing()
}

// StopEditing ends text editing, if any.
func (s *Scene) StopEditing() {
	t := s.editing
	if t == nil {
		return
	}
	s.editing = nil
	t.StopEditing()
	if s.IsSelected(t) || s.hovered == Object(t) {
		t.SetHighlight(true)
	}
}
