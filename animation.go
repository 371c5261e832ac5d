package tabletop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, ...) and call Update(dt) each frame, or hand it to an
// Animator as a step. When the group finishes it writes the exact float64
// targets, so a finished move lands precisely where the layout asked. If the
// target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens  [4]*gween.Tween
	count   int
	fields  [4]*float64
	targets [4]float64
	target  *Node
	Done    bool
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	i := g.count
	g.tweens[i] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[i] = field
	g.targets[i] = to
	g.count++
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.targets[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Finish jumps every field to its target and marks the group done.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	g.Done = true
	if g.target != nil && g.target.IsDisposed() {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.targets[i]
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenScaleX animates only node.ScaleX. Card flips squash horizontally.
func TweenScaleX(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, to, duration, fn)
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Rotation, to, duration, fn)
	return g
}

// TweenPlacement animates position and rotation together, which is what a
// card does when it slides into a holder slot.
func TweenPlacement(node *Node, toX, toY, toRot float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	g.add(&node.Rotation, toRot, duration, fn)
	return g
}

// TweenTransform animates position and uniform scale together (zoom).
func TweenTransform(node *Node, toX, toY, toScale float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	g.add(&node.ScaleX, toScale, duration, fn)
	g.add(&node.ScaleY, toScale, duration, fn)
	return g
}
