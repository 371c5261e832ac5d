package tabletop

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HandleKeyDown routes a key press. While a text object is being edited
// keys go to it; in zoom mode any key but the screenshot key leaves zoom.
func (s *Scene) HandleKeyDown(k ebiten.Key) {
	keys := s.cfg.Keys
	s.log.Debug("key down", "key", k, "mode", s.mode)
	if m := modifierOf(k); m != 0 {
		s.mods |= m
		return
	}
	if k == keys.Screenshot {
		s.Screenshot("key")
		return
	}
	if s.editing != nil {
		s.editKey(k)
		return
	}
	if s.mode == ModeZoom {
		s.ExitZoom()
		return
	}

	switch {
	case k == keys.Cancel:
		s.Cancel()
	case k == keys.MoveMode:
		s.ToggleMoveMode()
	case k == keys.ConnectMode:
		s.ToggleConnectMode()
	case s.mode == ModeConnect:
	case k == keys.Zoom:
		s.EnterZoom()
	case slices.Contains(keys.Delete, k):
		s.DeleteSelection()
	case k == keys.Copy:
		s.CopySelection()
	case k == keys.Shuffle:
		s.Shuffle()
	case k == keys.Deal:
		s.Deal()
	case k == keys.Flip:
		s.FlipSelection()
	case k == keys.Rotate:
		s.RotateSelection(s.cfg.KeyRotation)
	case k == keys.Edit:
		if len(s.selected) == 1 {
			if t, ok := s.selected[0].(*Text); ok {
				s.StartEditing(t)
			}
		}
	}
}

// HandleKeyUp routes a key release. Only modifier state cares.
func (s *Scene) HandleKeyUp(k ebiten.Key) {
	if m := modifierOf(k); m != 0 {
		s.mods &^= m
	}
}

// HandleChars types runes into the text being edited.
func (s *Scene) HandleChars(rs []rune) {
	if s.editing == nil || len(rs) == 0 {
		return
	}
	s.editing.TypeRunes(rs)
}

func (s *Scene) editKey(k ebiten.Key) {
	keys := s.cfg.Keys
	switch {
	case slices.Contains(keys.Delete, k):
		s.editing.Backspace()
	case k == keys.Edit, k == keys.Cancel:
		s.StopEditing()
	}
}

func modifierOf(k ebiten.Key) KeyModifiers {
	switch k {
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return ModShift
	case ebiten.KeyControlLeft, ebiten.KeyControlRight:
		return ModCtrl
	case ebiten.KeyAltLeft, ebiten.KeyAltRight:
		return ModAlt
	case ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return ModMeta
	}
	return 0
}

// Cancel snaps any drag back, drops the marquee and the connection being
// dragged, leaves zoom and connect mode and clears the selection.
func (s *Scene) Cancel() {
	s.CancelDrag()
	s.marquee = nil
	s.ExitZoom()
	if s.mode == ModeConnect {
		s.exitConnect()
	}
	s.ClearSelection()
}

// --- Selection commands ---

// DeleteSelection removes every selected object from the scene. Cards leave
// their holders, holders leave every deck's targets and tables lose a link
// to a deleted discard deck.
func (s *Scene) DeleteSelection() {
	if len(s.selected) == 0 {
		return
	}
	s.CancelDrag()
	doomed := slices.Clone(s.selected)
	s.ClearSelection()
	for _, o := range doomed {
		s.remove(o)
	}
	s.hovered = nil
	s.log.Debug("deleted", "objects", len(doomed))
}

// Remove takes o off the table. Unknown objects are ignored.
func (s *Scene) Remove(o Object) {
	if o == nil || !s.contains(o) {
		return
	}
	if s.IsSelected(o) {
		s.deselect(o)
	}
	if s.hovered == o {
		s.hovered = nil
	}
	s.remove(o)
}

func (s *Scene) remove(o Object) {
	var orphaned []*Card
	switch v := o.(type) {
	case *Card:
		s.releaseCard(v)
		if s.zoom != nil && s.zoom.card == v {
			s.zoom = nil
			s.mode = ModeNormal
		}
	case *Text:
		if s.editing == v {
			s.editing = nil
		}
	case CardHolder:
		for _, d := range s.decks {
			d.DisconnectHolder(v)
		}
		if d, ok := v.(*Deck); ok {
			// cards still waiting on a hand-off stay on the table loose
			orphaned = d.CancelDeals()
			for _, t := range s.tables {
				if t.discard == d {
					t.SetDiscardDeck(nil)
				}
			}
		}
		if s.link != nil && (s.link.deck == v || s.link.table == v) {
			s.link = nil
		}
	}
	if !s.removeFromCollection(o) {
		return
	}
	b := o.Base()
	s.anim.CancelNode(b.Node)
	b.Node.Dispose()
	s.renumber(o.Kind())
	if len(orphaned) > 0 {
		s.renumber(KindCard)
	}
}

// CopySelection clones every selected object, offsets the copies by
// CopyOffset and selects them in place of the originals. Holders are copied
// empty.
func (s *Scene) CopySelection() {
	if len(s.selected) == 0 || s.drag != nil {
		return
	}
	copies := make([]Object, 0, len(s.selected))
	for _, o := range s.selected {
		c := o.Clone()
		c.Base().SetPosition(o.Base().Position().Add(s.cfg.CopyOffset))
		s.Add(c)
		copies = append(copies, c)
	}
	s.Select(copies...)
	s.log.Debug("copied", "objects", len(copies))
}

// FlipSelection flips every selected card.
func (s *Scene) FlipSelection() {
	for _, c := range s.selectedCards() {
		c.Flip(DefaultFlipDuration)
	}
}

// RotateSelection turns every selected object by deg degrees. Objects still
// turning from an earlier command are skipped; holders re-flow their cards.
func (s *Scene) RotateSelection(deg float64) {
	if s.drag != nil {
		return
	}
	for _, o := range s.selected {
		o.Base().Rotate(deg)
		if h, ok := o.(CardHolder); ok {
			h.Relayout()
		}
	}
}

// targetDecks returns the selected decks, or the deck under the pointer when
// none is selected.
func (s *Scene) targetDecks() []*Deck {
	if ds := s.selectedDecks(); len(ds) > 0 {
		return ds
	}
	if d := s.DeckAt(s.pointer); d != nil {
		return []*Deck{d}
	}
	return nil
}

// Shuffle shuffles the target decks.
func (s *Scene) Shuffle() {
	for _, d := range s.targetDecks() {
		d.Shuffle()
		s.log.Debug("shuffle", "deck", d.ID, "cards", d.Len())
	}
}

// Deal deals the target decks with the configured stagger.
func (s *Scene) Deal() {
	for _, d := range s.targetDecks() {
		n := d.DealSmoothly(s.cfg.DealDelay)
		s.log.Debug("deal", "deck", d.ID, "cards", n)
	}
}
