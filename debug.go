package tabletop

import (
	"fmt"
	"log/slog"
)

// globalDebug enables tree sanity checks in Node operations. Set through
// SetDebugMode or Config.Debug.
var globalDebug bool

// SetDebugMode turns the display-tree sanity checks on or off for every
// scene.
func SetDebugMode(on bool) { globalDebug = on }

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tabletop debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		slog.Warn("node has too many children", "node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		slog.Warn("tree too deep", "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}
