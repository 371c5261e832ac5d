// Package tabletop is a virtual card table for [Ebitengine].
//
// A [Scene] owns every object on the table: cards, decks, racks, tables,
// counters, tokens and free-standing text. It turns mouse and keyboard input
// into selection, dragging, flipping, dealing and the rest, and draws the
// result.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := tabletop.NewScene(tabletop.DefaultConfig())
//	deck := scene.LoadDeck("", tabletop.Vec2{X: 400, Y: 300})
//	rack := scene.LoadRack("", tabletop.Vec2{X: 640, Y: 700})
//	deck.ConnectHolder(rack)
//	tabletop.Run(scene)
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Objects and holders
//
// Every placeable thing implements [Object] and embeds [Draggable]. Racks,
// tables and decks are also a [CardHolder]: they keep an ordered run of
// cards and lay them out, fanned in a row (racks, tables) or stacked (decks).
// Dropping a card on a holder inserts it at the slot nearest to where it was
// dropped. A table shows a single play at a time and sweeps the previous
// one into its discard deck. A deck deals to the holders it is connected to.
//
// # Modes
//
// Move mode lets holders and counters be dragged. Zoom mode magnifies one
// card. Connect mode draws and edits deck to holder connections and table
// to discard links. Zoom and connect mode are exclusive.
//
// # Transitions
//
// Movement is animated with [gween] tweens scheduled on an [Animator]. A new
// transition on a node replaces any pending one with the same [Tag]. A nil
// *Animator applies every transition at once, which headless callers and
// tests rely on.
//
// # Scripted input
//
// [Scene.InjectClick], [Scene.InjectDrag] and friends queue synthetic input,
// one event per frame. [LoadScript] drives them from a JSON file, which is
// how demos and visual checks are recorded.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package tabletop
