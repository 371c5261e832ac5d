package tabletop

import "slices"

// Tag identifies a class of transition on a node. Starting a transition
// cancels any pending one with the same node and tag.
type Tag uint8

const (
	TagMove   Tag = iota // holder re-flow, shuffle flourish, zoom
	TagFlip              // card flip squash
	TagRotate            // rotation by key or wheel
	TagDeal              // staggered deal hand-off
)

func (t Tag) String() string {
	switch t {
	case TagMove:
		return "move"
	case TagFlip:
		return "flip"
	case TagRotate:
		return "rotate"
	case TagDeal:
		return "deal"
	}
	return "unknown"
}

// Step is one element of a transition sequence.
type Step struct {
	build func() *TweenGroup
	call  func()
	delay float32
}

// Tween returns a step that runs the group returned by build. build is called
// when the step starts, so the tween begins from the node's values at that
// moment rather than when the sequence was scheduled.
func Tween(build func() *TweenGroup) Step { return Step{build: build} }

// Call returns a step that invokes fn once.
func Call(fn func()) Step { return Step{call: fn} }

// Delay returns a step that waits for the given number of seconds.
func Delay(seconds float64) Step { return Step{delay: float32(seconds)} }

// Transition is a running sequence of steps bound to a node and a tag.
type Transition struct {
	node      *Node
	tag       Tag
	steps     []Step
	cursor    int
	active    *TweenGroup
	elapsed   float32
	cancelled bool
}

// Node returns the node the transition is bound to.
func (t *Transition) Node() *Node { return t.node }

// Tag returns the transition's tag.
func (t *Transition) Tag() Tag { return t.tag }

// advance runs steps until one needs more time. Reports whether the sequence
// has completed.
func (t *Transition) advance(dt float32) bool {
	for t.cursor < len(t.steps) {
		if t.cancelled {
			return true
		}
		st := t.steps[t.cursor]
		switch {
		case st.build != nil:
			if t.active == nil {
				t.active = st.build()
			}
			if t.active != nil {
				t.active.Update(dt)
				if !t.active.Done {
					return false
				}
			}
			t.active = nil
		case st.delay > 0:
			t.elapsed += dt
			if t.elapsed < st.delay {
				return false
			}
			t.elapsed = 0
		case st.call != nil:
			st.call()
		}
		dt = 0
		t.cursor++
	}
	return true
}

// finish drains every remaining step immediately.
func (t *Transition) finish() {
	for !t.cancelled && t.cursor < len(t.steps) {
		st := t.steps[t.cursor]
		switch {
		case st.build != nil:
			if t.active == nil {
				t.active = st.build()
			}
			if t.active != nil {
				t.active.Finish()
			}
			t.active = nil
		case st.call != nil:
			st.call()
		}
		t.elapsed = 0
		t.cursor++
	}
}

// Animator owns the in-flight transitions of a scene and advances them once
// per frame. A nil *Animator is valid: every step is applied synchronously,
// which is what headless callers and tests want.
type Animator struct {
	list []*Transition
}

// NewAnimator returns an empty Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Run schedules steps on node under tag, first cancelling any pending
// transition with the same node and tag. On a nil Animator the steps run to
// completion before Run returns and the result is nil.
func (a *Animator) Run(node *Node, tag Tag, steps ...Step) *Transition {
	t := &Transition{node: node, tag: tag, steps: steps}
	if a == nil {
		t.finish()
		return nil
	}
	a.Cancel(node, tag)
	a.list = append(a.list, t)
	return t
}

// Cancel stops the pending transition for (node, tag), leaving the node where
// the transition last put it. No-op if there is none.
func (a *Animator) Cancel(node *Node, tag Tag) {
	if a == nil {
		return
	}
	a.list = slices.DeleteFunc(a.list, func(t *Transition) bool {
		if t.node == node && t.tag == tag {
			t.cancelled = true
			return true
		}
		return false
	})
}

// CancelNode stops every pending transition bound to node.
func (a *Animator) CancelNode(node *Node) {
	if a == nil {
		return
	}
	a.list = slices.DeleteFunc(a.list, func(t *Transition) bool {
		if t.node == node {
			t.cancelled = true
			return true
		}
		return false
	})
}

// CancelAll stops every pending transition.
func (a *Animator) CancelAll() {
	if a == nil {
		return
	}
	for _, t := range a.list {
		t.cancelled = true
	}
	clear(a.list)
	a.list = a.list[:0]
}

// Busy reports whether any transition is pending on node.
func (a *Animator) Busy(node *Node) bool {
	if a == nil {
		return false
	}
	for _, t := range a.list {
		if t.node == node {
			return true
		}
	}
	return false
}

// Pending reports whether a transition is pending for (node, tag).
func (a *Animator) Pending(node *Node, tag Tag) bool {
	if a == nil {
		return false
	}
	for _, t := range a.list {
		if t.node == node && t.tag == tag {
			return true
		}
	}
	return false
}

// Len returns the number of pending transitions.
func (a *Animator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.list)
}

// Update advances every pending transition by dt seconds. Transitions started
// from within a step are picked up on the next Update.
func (a *Animator) Update(dt float32) {
	if a == nil || len(a.list) == 0 {
		return
	}
	snapshot := slices.Clone(a.list)
	for _, t := range snapshot {
		if t.cancelled {
			continue
		}
		if t.advance(dt) {
			a.remove(t)
		}
	}
}

// Finish completes every pending transition immediately, including any that
// are started while finishing.
func (a *Animator) Finish() {
	if a == nil {
		return
	}
	for len(a.list) > 0 {
		t := a.list[0]
		t.finish()
		a.remove(t)
	}
}

func (a *Animator) remove(t *Transition) {
	if i := slices.Index(a.list, t); i >= 0 {
		a.list = slices.Delete(a.list, i, i+1)
	}
}
