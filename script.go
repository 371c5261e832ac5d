package tabletop

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep represents a single action in a session script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	DY     float64 `json:"dy,omitempty"`

	key ebiten.Key
}

// scriptFile is the top-level JSON structure for a session script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input events and screenshots across frames, for
// demos and automated visual checks. Attach to a Scene via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script. Every step is validated up front;
// errors wrap ErrBadScript and name the offending step.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadScript, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrBadScript)
	}
	for i := range f.Steps {
		st := &f.Steps[i]
		switch st.Action {
		case "click", "rightclick", "move", "drag", "scroll", "wait", "screenshot":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("%w: step %d: %w", ErrBadScript, i+1, err)
			}
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrBadScript, i+1, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script to the scene. While a script is attached real
// input is ignored.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether all steps in the script have been executed.
func (r *Script) Done() bool {
	return r.done
}

func (s *Scene) stepScript() {
	if s.script == nil {
		return
	}
	s.script.step(s)
}

// step advances the script by one frame.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "rightclick":
		s.InjectRightClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "key":
		s.InjectKey(st.key)
	case "scroll":
		s.InjectScroll(st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
